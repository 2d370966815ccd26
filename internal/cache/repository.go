package cache

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"taskboard/internal/repository"
)

// generationKey counts writes. Every cached entry is keyed by the generation
// read before its store query, so a fill that races a write lands under a
// key no later read asks for.
const generationKey = "tasks:gen"

func listKey(gen int64) string {
	return fmt.Sprintf("tasks:list:%d", gen)
}

func taskKey(gen int64, id string) string {
	return fmt.Sprintf("task:%d:%s", gen, id)
}

// CachedRepository wraps a repository.Repository with a cache-aside layer.
// Reads are served from Redis when possible and every write moves the cache
// to a new generation. Cache failures are logged and never fail the call.
type CachedRepository struct {
	next   repository.Repository
	cache  *Cache
	logger *log.Logger
	group  singleflight.Group
}

var _ repository.Repository = (*CachedRepository)(nil)

// NewCachedRepository decorates next with cache.
func NewCachedRepository(next repository.Repository, cache *Cache, logger *log.Logger) *CachedRepository {
	return &CachedRepository{
		next:   next,
		cache:  cache,
		logger: logger.WithPrefix("cache"),
	}
}

// Stats exposes the underlying cache counters.
func (r *CachedRepository) Stats() StatsSnapshot {
	return r.cache.Stats()
}

func (r *CachedRepository) ListTasks(ctx context.Context) ([]*repository.Task, error) {
	gen, ok := r.generation(ctx)
	if !ok {
		return r.next.ListTasks(ctx)
	}
	key := listKey(gen)

	var cached []*repository.Task
	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		r.logger.Warn("cache read failed", "key", key, "err", err)
	}
	if found {
		r.logger.Debug("cache hit", "key", key)
		if cached == nil {
			cached = []*repository.Task{}
		}
		return cached, nil
	}

	val, err, _ := r.group.Do(key, func() (interface{}, error) {
		tasks, err := r.next.ListTasks(ctx)
		if err != nil {
			return nil, err
		}
		if err := r.cache.Set(ctx, key, tasks); err != nil {
			r.logger.Warn("cache write failed", "key", key, "err", err)
		}
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]*repository.Task), nil
}

func (r *CachedRepository) GetTask(ctx context.Context, id string) (*repository.Task, error) {
	gen, ok := r.generation(ctx)
	if !ok {
		return r.next.GetTask(ctx, id)
	}
	key := taskKey(gen, id)

	var cached repository.Task
	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		r.logger.Warn("cache read failed", "key", key, "err", err)
	}
	if found {
		return &cached, nil
	}

	val, err, _ := r.group.Do(key, func() (interface{}, error) {
		task, err := r.next.GetTask(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := r.cache.Set(ctx, key, task); err != nil {
			r.logger.Warn("cache write failed", "key", key, "err", err)
		}
		return task, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*repository.Task), nil
}

func (r *CachedRepository) CreateTask(ctx context.Context, task *repository.Task) error {
	if err := r.next.CreateTask(ctx, task); err != nil {
		return err
	}
	r.invalidate(ctx, "")
	return nil
}

func (r *CachedRepository) UpdateTask(ctx context.Context, id string, patch repository.TaskPatch) (*repository.Task, error) {
	task, err := r.next.UpdateTask(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return task, nil
}

func (r *CachedRepository) DeleteTask(ctx context.Context, id string) error {
	if err := r.next.DeleteTask(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// Ping checks the store. Reads fall back to the store when Redis is down,
// so Redis is reported separately by PingCache.
func (r *CachedRepository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

// PingCache checks only Redis.
func (r *CachedRepository) PingCache(ctx context.Context) error {
	return r.cache.Ping(ctx)
}

func (r *CachedRepository) Close() error {
	return stderrors.Join(r.next.Close(), r.cache.Close())
}

// generation reports the current generation, or false when Redis cannot be
// read and the call should bypass the cache.
func (r *CachedRepository) generation(ctx context.Context) (int64, bool) {
	gen, err := r.cache.Generation(ctx, generationKey)
	if err != nil {
		r.logger.Warn("cache generation read failed", "err", err)
		return 0, false
	}
	return gen, true
}

// invalidate moves the cache to a new generation and drops the entries of
// the previous one. id is the written task, empty for a create.
func (r *CachedRepository) invalidate(ctx context.Context, id string) {
	gen, err := r.cache.Bump(ctx, generationKey)
	if err != nil {
		r.logger.Warn("cache invalidation failed", "err", err)
		return
	}

	keys := []string{listKey(gen - 1)}
	if id != "" {
		keys = append(keys, taskKey(gen-1, id))
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		r.logger.Warn("cache cleanup failed", "keys", keys, "err", err)
	}
}
