package worker

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// memQueue is an in-memory Queue with Redis list and sorted-set semantics.
type memQueue struct {
	mu     sync.Mutex
	lists  map[string][]string // index 0 is the head (LPUSH side)
	zsets  map[string]map[string]float64
	pushFn func(key string) error
	popErr error
}

var _ Queue = (*memQueue)(nil)

func newMemQueue() *memQueue {
	return &memQueue{lists: map[string][]string{}, zsets: map[string]map[string]float64{}}
}

func toString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	default:
		panic("memQueue: unsupported value type")
	}
}

func (m *memQueue) LPush(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pushFn != nil {
		if err := m.pushFn(key); err != nil {
			return redis.NewIntResult(0, err)
		}
	}
	for _, v := range values {
		m.lists[key] = append([]string{toString(v)}, m.lists[key]...)
	}
	return redis.NewIntResult(int64(len(m.lists[key])), nil)
}

func (m *memQueue) BRPop(_ context.Context, _ time.Duration, keys ...string) *redis.StringSliceCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.popErr != nil {
		return redis.NewStringSliceResult(nil, m.popErr)
	}
	for _, k := range keys {
		l := m.lists[k]
		if len(l) == 0 {
			continue
		}
		v := l[len(l)-1]
		m.lists[k] = l[:len(l)-1]
		return redis.NewStringSliceResult([]string{k, v}, nil)
	}
	return redis.NewStringSliceResult(nil, redis.Nil)
}

func (m *memQueue) LLen(_ context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	return redis.NewIntResult(int64(len(m.lists[key])), nil)
}

func (m *memQueue) LRange(_ context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.lists[key]
	if stop < 0 || stop >= int64(len(l)) {
		stop = int64(len(l)) - 1
	}
	if start > stop {
		return redis.NewStringSliceResult([]string{}, nil)
	}
	return redis.NewStringSliceResult(append([]string(nil), l[start:stop+1]...), nil)
}

func (m *memQueue) ZAdd(_ context.Context, key string, members ...redis.Z) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.zsets[key] == nil {
		m.zsets[key] = map[string]float64{}
	}
	for _, z := range members {
		m.zsets[key][toString(z.Member)] = z.Score
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (m *memQueue) ZRangeByScore(_ context.Context, key string, opt *redis.ZRangeBy) *redis.StringSliceCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	limit, _ := strconv.ParseFloat(opt.Max, 64)
	type kv struct {
		member string
		score  float64
	}
	var due []kv
	for member, score := range m.zsets[key] {
		if score <= limit {
			due = append(due, kv{member, score})
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].score < due[j].score })
	out := make([]string, 0, len(due))
	for _, d := range due {
		out = append(out, d.member)
	}
	return redis.NewStringSliceResult(out, nil)
}

func (m *memQueue) ZRem(_ context.Context, key string, members ...interface{}) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, v := range members {
		s := toString(v)
		if _, ok := m.zsets[key][s]; ok {
			delete(m.zsets[key], s)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}
