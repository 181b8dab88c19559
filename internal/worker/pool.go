package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/logger"
	"github.com/juanmzaragoza/billing-dad-project/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	QueueEnvios = "jobs:envios"
	JobEnvio    = "envio"
)

// ErrPermanente marks a job failure that retrying cannot fix (bad payload,
// missing document). Such jobs go straight to the DLQ.
var ErrPermanente = errors.New("fallo permanente")

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes one job payload. A nil error acknowledges the job.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Queue is the subset of Redis commands the pool relies on. *redis.Client
// satisfies it.
type Queue interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
	LLen(ctx context.Context, key string) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	ZRangeByScore(ctx context.Context, key string, opt *redis.ZRangeBy) *redis.StringSliceCmd
	ZRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	q Queue
}

func NewDispatcher(q Queue) *Dispatcher {
	return &Dispatcher{q: q}
}

// EncolarEnvio pushes a document delivery job.
func (d *Dispatcher) EncolarEnvio(ctx context.Context, p dto.EnvioJobPayload) error {
	return d.enqueue(ctx, QueueEnvios, JobEnvio, p)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.q.LPush(ctx, queue, encoded).Err()
}

// PoolConfig configures the consumer side of the queues.
type PoolConfig struct {
	Workers     int
	MaxAttempts int
	Metrics     *metrics.Metrics
	// Now is overridable in tests; it schedules retries.
	Now func() time.Time
	// ErrorBackoff is the pause after a failed BRPOP. Defaults to 1s.
	ErrorBackoff time.Duration
}

// Pool runs handlers for jobs popped from the queues. Failed jobs are
// rescheduled with backoff until MaxAttempts, then moved to the DLQ.
type Pool struct {
	q        Queue
	cfg      PoolConfig
	handlers map[string]Handler
	queues   []string
	log      zerolog.Logger
}

func NewPool(q Queue, cfg PoolConfig) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = time.Second
	}
	return &Pool{
		q:        q,
		cfg:      cfg,
		handlers: map[string]Handler{},
		queues:   []string{QueueEnvios},
		log:      logger.WithComponent("worker"),
	}
}

// Register binds a job type to its handler. Call before Start.
func (p *Pool) Register(jobType string, h Handler) {
	p.handlers[jobType] = h
}

// Start launches the worker goroutines and blocks until ctx is cancelled and
// every worker has returned. Each goroutine blocks on BRPOP, so idle workers
// cost nothing.
func (p *Pool) Start(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < p.cfg.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.run(ctx, id)
		}(i)
	}
	p.log.Info().Int("workers", p.cfg.Workers).Msg("worker pool started")
	wg.Wait()
}

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			p.log.Debug().Int("worker", id).Msg("worker shutting down")
			return
		default:
		}
		// Waits up to 5s, then loops to check ctx.
		result, err := p.q.BRPop(ctx, 5*time.Second, p.queues...).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				p.log.Warn().Err(err).Msg("brpop failed")
				select {
				case <-ctx.Done():
					return
				case <-time.After(p.cfg.ErrorBackoff):
				}
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		p.Process(ctx, result[0], result[1])
	}
}

// Process runs a single raw job taken from queue.
func (p *Pool) Process(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		p.log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		SendToDLQ(ctx, p.q, queue, Job{Type: "desconocido", Payload: json.RawMessage(fmt.Sprintf("%q", raw))}, err.Error(), p.cfg.Now())
		return
	}

	h, ok := p.handlers[job.Type]
	if !ok {
		p.log.Error().Str("type", job.Type).Str("queue", queue).Msg("no handler for job type")
		SendToDLQ(ctx, p.q, queue, job, "tipo de job sin handler", p.cfg.Now())
		return
	}

	job.Attempts++
	err := h(ctx, job.Payload)
	if err == nil {
		p.cfg.Metrics.Job(job.Type, "ok")
		return
	}

	log := p.log.With().Str("type", job.Type).Int("attempt", job.Attempts).Logger()
	if errors.Is(err, ErrPermanente) || job.Attempts >= p.cfg.MaxAttempts {
		p.cfg.Metrics.Job(job.Type, "dlq")
		log.Error().Err(err).Msg("job failed for good")
		SendToDLQ(ctx, p.q, queue, job, err.Error(), p.cfg.Now())
		return
	}

	p.cfg.Metrics.Job(job.Type, "retry")
	next := p.cfg.Now().Add(computeRetryBackoff(job.Attempts))
	if rerr := scheduleRetry(ctx, p.q, queue, job, next); rerr != nil {
		log.Error().Err(rerr).Msg("could not schedule retry, moving to DLQ")
		SendToDLQ(ctx, p.q, queue, job, err.Error(), p.cfg.Now())
		return
	}
	log.Warn().Err(err).Time("next_retry_at", next).Msg("job failed, retry scheduled")
}
