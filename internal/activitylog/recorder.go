package activitylog

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/frahmantamala/rbac-dashboard/internal"
	activitylogDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/activitylog"
	"gorm.io/datatypes"
)

// RecorderAPI is what services depend on to leave an audit trail.
// Record never blocks on the store and never reports failure.
type RecorderAPI interface {
	Record(ctx context.Context, actorID int64, action Action, resource string, details map[string]any)
}

type Store interface {
	Create(ctx context.Context, entry *activitylogDatamodel.ActivityLog) error
}

type RecorderConfig struct {
	QueueSize    int
	Workers      int
	WriteTimeout time.Duration
}

// Recorder persists audit entries from a bounded queue drained by a fixed
// set of workers. When the queue is full the entry is dropped and logged.
type Recorder struct {
	store        Store
	logger       *slog.Logger
	writeTimeout time.Duration
	now          func() time.Time

	jobQueue chan *activitylogDatamodel.ActivityLog
	workers  int
	wg       sync.WaitGroup
	once     sync.Once

	mu     sync.RWMutex
	closed bool
}

func NewRecorder(store Store, config RecorderConfig, logger *slog.Logger) *Recorder {
	workers := config.Workers
	if workers <= 0 {
		workers = 2
	}

	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = 256
	}

	writeTimeout := config.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}

	r := &Recorder{
		store:        store,
		logger:       logger,
		writeTimeout: writeTimeout,
		now:          time.Now,
		jobQueue:     make(chan *activitylogDatamodel.ActivityLog, queueSize),
		workers:      workers,
	}

	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go r.work(i)
	}

	logger.Info("audit recorder started", "workers", workers, "queue_size", queueSize)
	return r
}

func (r *Recorder) Record(ctx context.Context, actorID int64, action Action, resource string, details map[string]any) {
	client := internal.ClientInfoFromContext(ctx)
	entry := &activitylogDatamodel.ActivityLog{
		UserID:     actorID,
		Action:     string(action),
		Resource:   resource,
		Details:    datatypes.JSONMap(maps.Clone(details)),
		IPAddress:  client.IP,
		UserAgent:  client.UserAgent,
		OccurredAt: r.now().UTC(),
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.logger.Warn("audit entry dropped: recorder stopped", "action", action, "user_id", actorID)
		return
	}

	select {
	case r.jobQueue <- entry:
	default:
		r.logger.Warn("audit entry dropped: queue full", "action", action, "user_id", actorID, "queue_size", cap(r.jobQueue))
	}
}

func (r *Recorder) work(id int) {
	defer r.wg.Done()

	for entry := range r.jobQueue {
		r.write(id, entry)
	}
	r.logger.Debug("audit worker stopped", "worker_id", id)
}

func (r *Recorder) write(worker int, entry *activitylogDatamodel.ActivityLog) {
	ctx, cancel := internal.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()

	if err := r.store.Create(ctx, entry); err != nil {
		r.logger.Error("failed to persist audit entry",
			"worker_id", worker,
			"action", entry.Action,
			"user_id", entry.UserID,
			"error", err)
	}
}

// Shutdown stops accepting entries, drains whatever is queued and waits for
// the workers. Safe to call more than once.
func (r *Recorder) Shutdown() {
	r.once.Do(func() {
		r.logger.Info("shutting down audit recorder", "pending", len(r.jobQueue))

		r.mu.Lock()
		r.closed = true
		close(r.jobQueue)
		r.mu.Unlock()

		r.wg.Wait()
		r.logger.Info("audit recorder shutdown complete")
	})
}
