package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-translator/internal/store"
)

// Manager выдает каждой браузерной сессии свой TaskStore.
// Сессии между собой ничего не разделяют.
type Manager struct {
	logger *zap.Logger
	ttl    time.Duration

	mu       sync.Mutex
	sessions map[string]*entry

	wg   sync.WaitGroup
	stop chan struct{}
}

type entry struct {
	store    *store.MemoryStore
	lastSeen time.Time
}

func NewManager(logger *zap.Logger, ttl time.Duration) *Manager {
	return &Manager{
		logger:   logger,
		ttl:      ttl,
		sessions: make(map[string]*entry),
		stop:     make(chan struct{}),
	}
}

func NewID() string {
	return uuid.NewString()
}

// Store возвращает стор сессии, создавая его при первом обращении
func (m *Manager) Store(id string) store.TaskStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		e = &entry{store: store.NewMemoryStore()}
		m.sessions[id] = e
		m.logger.Info("session created", zap.String("session_id", id))
	}
	e.lastSeen = time.Now()
	return e.store
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Start запускает фоновую чистку простаивающих сессий,
// иначе память растет бесконечно
func (m *Manager) Start(ctx context.Context) {
	interval := m.ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}

	m.logger.Info("Starting session sweeper", zap.Duration("ttl", m.ttl), zap.Duration("interval", interval))

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-m.stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sweep()
			}
		}
	}()
}

func (m *Manager) Stop() {
	m.logger.Info("Stopping session sweeper...")
	close(m.stop)
	m.wg.Wait()
	m.logger.Info("Session sweeper stopped")
}

func (m *Manager) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, e := range m.sessions {
		if time.Since(e.lastSeen) > m.ttl {
			delete(m.sessions, id)
			m.logger.Info("session expired", zap.String("session_id", id))
		}
	}
}
