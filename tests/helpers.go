package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-translator/internal/handler"
	"github.com/BuzzLyutic/todo-translator/internal/session"
	"github.com/BuzzLyutic/todo-translator/internal/translator"
)

// Upstream - управляемая заглушка внешнего сервиса перевода
type Upstream struct {
	Server *httptest.Server
	Calls  atomic.Int64
	Mode   atomic.Int32 // 0 - ok, иначе HTTP-статус ответа
}

func (u *Upstream) FailWith(status int) { u.Mode.Store(int32(status)) }
func (u *Upstream) Recover()            { u.Mode.Store(0) }

// StartUpstream поднимает заглушку, отвечающую переводом вида "[lang] text"
func StartUpstream(t *testing.T) *Upstream {
	t.Helper()

	u := &Upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.Calls.Add(1)

		if status := u.Mode.Load(); status != 0 {
			w.WriteHeader(int(status))
			return
		}

		var req struct {
			Text       string `json:"text"`
			TargetLang string `json:"target_lang"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"translated_text": fmt.Sprintf("[%s] %s", req.TargetLang, req.Text),
		})
	}))
	t.Cleanup(u.Server.Close)
	return u
}

// SetupServer собирает полный сервер приложения поверх заглушки перевода
func SetupServer(t *testing.T, upstream *Upstream) (*httptest.Server, func()) {
	t.Helper()

	logger := zap.NewNop()
	client := translator.NewClient(upstream.Server.URL, "", 2*time.Second, logger)
	sessions := session.NewManager(logger, time.Minute)
	taskHandler := handler.NewTaskHandler(sessions, client, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Post("/", taskHandler.Create)
		r.Get("/", taskHandler.List)
		r.Post("/{id}/toggle", taskHandler.Toggle)
		r.Post("/{id}/translate", taskHandler.Translate)
	})
	r.Get("/api/stats", taskHandler.Stats)
	r.Get("/api/languages", taskHandler.Languages)

	server := httptest.NewServer(r)
	cleanup := func() {
		server.Close()
	}
	return server, cleanup
}

// NewSessionClient - HTTP-клиент с cookie jar, одна сессия приложения
func NewSessionClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}
