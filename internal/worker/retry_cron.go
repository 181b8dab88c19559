package worker

// Failed jobs wait in a sorted set (retry:{queue}) scored by their next
// attempt time. A ticker moves due jobs back onto the live queue.

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	RetryPrefix       = "retry:"
	retryTickInterval = 10 * time.Second
	retryBatchSize    = 50
	retryBaseDelay    = 30 * time.Second
	retryMaxDelay     = 10 * time.Minute
)

// computeRetryBackoff doubles the delay per attempt: 30s, 1m, 2m … capped at 10m.
func computeRetryBackoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	d := retryBaseDelay
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= retryMaxDelay {
			return retryMaxDelay
		}
	}
	return d
}

func scheduleRetry(ctx context.Context, q Queue, queue string, job Job, at time.Time) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.ZAdd(ctx, RetryPrefix+queue, redis.Z{Score: float64(at.Unix()), Member: string(data)}).Err()
}

// RetryCron re-enqueues jobs whose retry time has come.
type RetryCron struct {
	q        Queue
	queues   []string
	interval time.Duration
	now      func() time.Time
}

func NewRetryCron(q Queue) *RetryCron {
	return &RetryCron{q: q, queues: []string{QueueEnvios}, interval: retryTickInterval, now: time.Now}
}

// Start ticks until ctx is cancelled.
func (c *RetryCron) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Info().Msg("retry_cron: started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("retry_cron: shutting down")
			return
		case <-ticker.C:
			for _, queue := range c.queues {
				if _, err := c.MoverVencidos(ctx, queue); err != nil {
					log.Error().Err(err).Str("queue", queue).Msg("retry_cron: failed to move due jobs")
				}
			}
		}
	}
}

// MoverVencidos pushes every due job of queue back onto it and returns how
// many were moved. ZREM decides ownership, so concurrent replicas never
// requeue the same job twice.
func (c *RetryCron) MoverVencidos(ctx context.Context, queue string) (int, error) {
	key := RetryPrefix + queue
	due, err := c.q.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(c.now().Unix(), 10),
		Count: retryBatchSize,
	}).Result()
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, member := range due {
		n, err := c.q.ZRem(ctx, key, member).Result()
		if err != nil {
			return moved, err
		}
		if n == 0 {
			continue
		}
		if err := c.q.LPush(ctx, queue, member).Err(); err != nil {
			// Put it back so the next tick tries again.
			_ = c.q.ZAdd(ctx, key, redis.Z{Score: float64(c.now().Unix()), Member: member}).Err()
			return moved, err
		}
		moved++
	}
	if moved > 0 {
		log.Info().Str("queue", queue).Int("count", moved).Msg("retry_cron: jobs requeued")
	}
	return moved, nil
}
