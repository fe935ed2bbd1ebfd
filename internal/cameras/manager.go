package cameras

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Manager keeps at most one open panel per shop (thread-safe). There is no
// cross-shop sharing: each panel owns its own registry, poller and
// coordinator, and closing a shop discards all of them.
type Manager struct {
	api    API
	opts   Options
	logger *zap.Logger

	mu     sync.Mutex
	panels map[string]*Panel
}

// NewManager creates a panel manager backed by api.
func NewManager(api API, opts Options, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{api: api, opts: opts, logger: logger, panels: make(map[string]*Panel)}
}

// Open returns the shop's panel, creating and seeding it on first use.
func (m *Manager) Open(ctx context.Context, shopID string) (*Panel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p := m.panels[shopID]; p != nil {
		return p, nil
	}
	p, err := OpenPanel(ctx, shopID, m.api, m.opts, m.logger)
	if err != nil {
		return nil, err
	}
	m.panels[shopID] = p
	return p, nil
}

// Get returns the open panel for shopID, if any.
func (m *Manager) Get(shopID string) (*Panel, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.panels[shopID]
	return p, ok
}

// Close stops and removes the shop's panel. Closing a shop with no open
// panel is a no-op.
func (m *Manager) Close(shopID string) {
	m.mu.Lock()
	p := m.panels[shopID]
	delete(m.panels, shopID)
	m.mu.Unlock()
	if p != nil {
		p.Close()
	}
}

// CloseAll stops every open panel, used on server shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	panels := make([]*Panel, 0, len(m.panels))
	for _, p := range m.panels {
		panels = append(panels, p)
	}
	m.panels = make(map[string]*Panel)
	m.mu.Unlock()
	for _, p := range panels {
		p.Close()
	}
}
