package shutdown

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cpucorecore/datelabel/internal/monitor"
	"github.com/cpucorecore/datelabel/log"
)

type Manager struct {
	mu           sync.RWMutex
	draining     bool
	drainCtx     context.Context
	drainCancel  context.CancelFunc
	shutdownTime time.Time
}

func NewManager() *Manager {
	drainCtx, drainCancel := context.WithCancel(context.Background())
	return &Manager{
		drainCtx:    drainCtx,
		drainCancel: drainCancel,
	}
}

// StartDrain stops new requests from being served. Safe to call twice.
func (m *Manager) StartDrain() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draining {
		return
	}

	m.draining = true
	m.shutdownTime = time.Now()
	m.drainCancel()
	monitor.SetDraining(true)

	log.Log.Sugar().Info("Service entering drain mode - no longer accepting new requests")
}

func (m *Manager) IsDraining() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.draining
}

// Done is closed once draining starts.
func (m *Manager) Done() <-chan struct{} {
	return m.drainCtx.Done()
}

func (m *Manager) GetShutdownDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.shutdownTime.IsZero() {
		return 0
	}
	return time.Since(m.shutdownTime)
}

// Middleware rejects requests with 503 while draining.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.IsDraining() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service is draining"})
			return
		}
		c.Next()
	}
}
