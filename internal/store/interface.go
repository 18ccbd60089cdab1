package store

import (
	"github.com/BuzzLyutic/todo-translator/internal/model"
)

// TaskStore определяет интерфейс для работы со списком задач одной сессии
type TaskStore interface {
	Add(text string) (model.Task, error)
	Get(id string) (model.Task, error)
	Toggle(id string) (model.Task, error)
	SetTranslation(id string, tr model.Translation) (model.Task, error)
	List() []model.Task
	Stats() model.Stats
}
