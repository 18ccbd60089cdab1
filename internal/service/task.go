package service

import (
	"context"

	"github.com/BuzzLyutic/todo-translator/internal/model"
	"github.com/BuzzLyutic/todo-translator/internal/store"
)

// Translator - контракт с клиентом перевода, нужен для подмены в тестах
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

type TaskService struct {
	store      store.TaskStore
	translator Translator
}

func NewTaskService(st store.TaskStore, tr Translator) *TaskService {
	return &TaskService{store: st, translator: tr}
}

func (s *TaskService) Add(text string) (model.Task, error) {
	return s.store.Add(text)
}

func (s *TaskService) Toggle(id string) (model.Task, error) {
	return s.store.Toggle(id)
}

func (s *TaskService) List() []model.Task {
	return s.store.List()
}

func (s *TaskService) Stats() model.Stats {
	return s.store.Stats()
}

// Translate: Idle -> Requesting -> {Succeeded, Failed}.
// При любой ошибке перевода задача не меняется - прошлый перевод остается.
func (s *TaskService) Translate(ctx context.Context, id, lang string) (model.Task, error) {
	t, err := s.store.Get(id)
	if err != nil {
		return model.Task{}, err
	}

	translated, err := s.translator.Translate(ctx, t.Text, lang)
	if err != nil {
		return model.Task{}, err
	}

	return s.store.SetTranslation(id, model.Translation{Lang: lang, Text: translated})
}
