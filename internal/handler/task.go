package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-translator/internal/model"
	"github.com/BuzzLyutic/todo-translator/internal/service"
	"github.com/BuzzLyutic/todo-translator/internal/session"
	"github.com/BuzzLyutic/todo-translator/internal/store"
	"github.com/BuzzLyutic/todo-translator/internal/translator"
	"github.com/BuzzLyutic/todo-translator/pkg/respond"
)

const sessionCookie = "todo_session"

// TranslationClient - то, что хэндлеру нужно от клиента перевода
type TranslationClient interface {
	Translate(ctx context.Context, text, target string) (string, error)
	Stats() translator.Stats
}

type TaskHandler struct {
	sessions   *session.Manager
	translator TranslationClient
	logger     *zap.Logger
}

func NewTaskHandler(sessions *session.Manager, tr TranslationClient, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		sessions:   sessions,
		translator: tr,
		logger:     logger,
	}
}

type createRequest struct {
	Text string `json:"text"`
}

type translateRequest struct {
	Lang string `json:"lang"`
}

type statsResponse struct {
	Tasks       model.Stats      `json:"tasks"`
	Translation translator.Stats `json:"translation"`
}

// taskService привязывает запрос к стору его сессии.
// Куки нет - создаем новую сессию.
func (h *TaskHandler) taskService(w http.ResponseWriter, r *http.Request) *service.TaskService {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		id = c.Value
	} else {
		id = session.NewID()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return service.NewTaskService(h.sessions.Store(id), h.translator)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := h.taskService(w, r).Add(req.Text)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, h.taskService(w, r).List())
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.taskService(w, r).Toggle(id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Translate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := h.taskService(w, r).Translate(r.Context(), id, req.Lang)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, statsResponse{
		Tasks:       h.taskService(w, r).Stats(),
		Translation: h.translator.Stats(),
	})
}

func (h *TaskHandler) Languages(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, translator.Languages())
}

// handleErrors переводит ошибки ядра в HTTP-статусы.
// Каждая ошибка возвращается с текстом причины, молчаливых отказов нет.
func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidInput), errors.Is(err, translator.ErrEmptyText):
		respond.Error(w, r, http.StatusBadRequest, "task text must not be empty")
	case errors.Is(err, translator.ErrUnsupportedLanguage):
		respond.Error(w, r, http.StatusBadRequest, "unsupported target language")
	case errors.Is(err, store.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "task not found")
	case errors.Is(err, translator.ErrRateLimited):
		respond.Error(w, r, http.StatusTooManyRequests, "translation service rate limit exceeded")
	case errors.Is(err, translator.ErrNetwork):
		respond.Error(w, r, http.StatusBadGateway, "translation service unreachable")
	case errors.Is(err, translator.ErrService):
		respond.Error(w, r, http.StatusBadGateway, "translation service error")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
