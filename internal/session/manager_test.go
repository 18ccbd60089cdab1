package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManager_StoreIsolation(t *testing.T) {
	m := NewManager(zap.NewNop(), time.Minute)

	idA := NewID()
	idB := NewID()
	require.NotEqual(t, idA, idB)

	storeA := m.Store(idA)
	storeB := m.Store(idB)

	_, err := storeA.Add("only in A")
	require.NoError(t, err)

	// Сессии друг друга не видят
	assert.Len(t, storeA.List(), 1)
	assert.Empty(t, storeB.List())
	assert.Equal(t, 2, m.Count())
}

func TestManager_StoreIsStable(t *testing.T) {
	m := NewManager(zap.NewNop(), time.Minute)
	id := NewID()

	st := m.Store(id)
	_, err := st.Add("task")
	require.NoError(t, err)

	// Повторное обращение возвращает тот же стор
	again := m.Store(id)
	assert.Len(t, again.List(), 1)
	assert.Equal(t, 1, m.Count())
}

func TestManager_SweepExpiresIdleSessions(t *testing.T) {
	m := NewManager(zap.NewNop(), 50*time.Millisecond)

	idle := NewID()
	active := NewID()
	m.Store(idle)
	m.Store(active)
	require.Equal(t, 2, m.Count())

	time.Sleep(80 * time.Millisecond)
	m.Store(active) // Активная сессия продлевается обращением

	m.sweep()

	assert.Equal(t, 1, m.Count())
	// Обращение к вычищенной сессии создает ее заново - с пустым стором
	assert.Empty(t, m.Store(idle).List())
}

func TestManager_StartStop(t *testing.T) {
	m := NewManager(zap.NewNop(), time.Minute)
	m.Start(context.Background())

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}
