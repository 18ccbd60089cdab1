package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/todo-translator/internal/model"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// MemoryStore хранит задачи одной сессии в памяти, порядок вставки сохраняется.
// Мьютекс нужен потому что HTTP-хэндлеры могут работать параллельно.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks []*model.Task
	byID  map[string]*model.Task
}

func NewMemoryStore() *MemoryStore { // Конструктор
	return &MemoryStore{
		byID: make(map[string]*model.Task),
	}
}

func (s *MemoryStore) Add(text string) (model.Task, error) {
	// Валидация до любых изменений - пустой текст не создает задачу
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	t := &model.Task{
		ID:        uuid.NewString(),
		Text:      text,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks = append(s.tasks, t)
	s.byID[t.ID] = t
	return cloneTask(t), nil
}

func (s *MemoryStore) Get(id string) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	return cloneTask(t), nil
}

func (s *MemoryStore) Toggle(id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	t.Completed = !t.Completed
	t.UpdatedAt = time.Now()
	return cloneTask(t), nil
}

func (s *MemoryStore) SetTranslation(id string, tr model.Translation) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	// Текст и статус задачи не трогаем, заменяется только перевод
	t.Translation = &model.Translation{Lang: tr.Lang, Text: tr.Text}
	t.UpdatedAt = time.Now()
	return cloneTask(t), nil
}

func (s *MemoryStore) List() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, cloneTask(t))
	}
	return out
}

func (s *MemoryStore) Stats() model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := model.Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}

// cloneTask отдает копию, чтобы снаружи нельзя было менять состояние стора
func cloneTask(t *model.Task) model.Task {
	c := *t
	if t.Translation != nil {
		tr := *t.Translation
		c.Translation = &tr
	}
	return c
}
