package cameras

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shopsentry/dashboard/internal/models"
)

// DefaultPollInterval is the status poll cadence when none is configured.
const DefaultPollInterval = 5 * time.Second

// Poller fetches the shop's active-recording set on a fixed cadence and hands
// each result to apply. Fetch failures are swallowed: the status set resets
// to empty and ticking continues, so a transient upstream outage never wedges
// the panel, at the cost of briefly showing every camera as not recording.
type Poller struct {
	shopID   string
	api      API
	apply    func([]models.RecordingStatus)
	interval time.Duration
	logger   *zap.Logger

	mu        sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
	refreshCh chan struct{}
}

// NewPoller creates a poller for shopID. apply receives every poll result,
// including the empty set produced by a failed fetch.
func NewPoller(shopID string, api API, interval time.Duration, apply func([]models.RecordingStatus), logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		shopID:    shopID,
		api:       api,
		apply:     apply,
		interval:  interval,
		logger:    logger,
		refreshCh: make(chan struct{}, 1),
	}
}

// Start begins the poll loop. Call Stop to release resources.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.mu.Unlock()

	go p.run(ctx, p.done)
}

// Stop cancels the loop and waits for it to exit. No result is applied after
// Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
	<-p.done
}

// Refresh requests an immediate out-of-cadence poll, used after a start/stop
// command settles so the panel reflects the new state without waiting a full
// interval. Coalesces if a refresh is already pending.
func (p *Poller) Refresh() {
	select {
	case p.refreshCh <- struct{}{}:
	default:
	}
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.refreshCh:
			p.poll(ctx)
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	statuses, err := p.api.RecordingStatus(ctx, p.shopID)
	if err != nil {
		p.logger.Warn("recording status poll failed", zap.String("shop_id", p.shopID), zap.Error(err))
		statuses = nil
	}
	// The view may have been torn down while the fetch was in flight.
	if ctx.Err() != nil {
		return
	}
	p.apply(statuses)
}
