package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-translator/internal/config"
	"github.com/BuzzLyutic/todo-translator/internal/handler"
	"github.com/BuzzLyutic/todo-translator/internal/session"
	"github.com/BuzzLyutic/todo-translator/internal/translator"
	"github.com/BuzzLyutic/todo-translator/web"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg := config.Load()

	// Клиент перевода и менеджер сессий - вся "БД" живет в памяти
	client := translator.NewClient(cfg.TranslatorURL, cfg.TranslatorAPIKey, cfg.TranslateTimeout, logger)
	sessions := session.NewManager(logger, cfg.SessionTTL)
	sessions.Start(context.Background())

	taskHandler := handler.NewTaskHandler(sessions, client, logger)

	r := chi.NewRouter() // Создаем роутер
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
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

	// Одностраничный UI
	r.Handle("/", http.FileServer(http.FS(web.Static)))

	srv := http.Server{ // Создаем сервер
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // Перевод может ждать внешний сервис
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	sessions.Stop()
	logger.Info("Server stopped succsessfully!")
}
