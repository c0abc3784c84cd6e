package server

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-md2cv/internal/storage"
)

// deleteTimeout bounds one storage delete on eviction.
const deleteTimeout = 30 * time.Second

// lister is implemented by stores that can enumerate their artifacts.
type lister interface {
	List(ctx context.Context) ([]storage.Artifact, error)
}

// retention tracks generated PDFs; an artifact is downloadable while
// tracked and deleted from storage when it expires.
type retention struct {
	items  *cache.Cache
	store  storage.Store
	ttl    time.Duration
	logger logrus.FieldLogger
}

func newRetention(store storage.Store, ttl, cleanupInterval time.Duration, logger logrus.FieldLogger) *retention {
	r := &retention{
		items:  cache.New(ttl, cleanupInterval),
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
	r.items.OnEvicted(r.evict)
	return r
}

func (r *retention) evict(name string, _ any) {
	ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
	defer cancel()

	log := r.logger.WithField("filename", name)
	if err := r.store.Delete(ctx, name); err != nil {
		log.WithError(err).Warn("deleting expired artifact failed")
		return
	}
	log.Info("expired artifact deleted")
}

// track starts the retention clock for name.
func (r *retention) track(name string) {
	r.items.SetDefault(name, time.Now())
}

// tracked reports whether name exists and has not expired.
func (r *retention) tracked(name string) bool {
	_, ok := r.items.Get(name)
	return ok
}

// restore re-tracks artifacts left by a previous run with their remaining
// lifetime and deletes those already expired. Stores that cannot list
// are skipped.
func (r *retention) restore(ctx context.Context, now time.Time) (kept, removed int, err error) {
	l, ok := r.store.(lister)
	if !ok {
		return 0, 0, nil
	}

	artifacts, err := l.List(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, a := range artifacts {
		remaining := r.ttl - now.Sub(a.ModTime)
		if remaining > 0 {
			r.items.Set(a.Name, a.ModTime, remaining)
			kept++
			continue
		}
		if err := r.store.Delete(ctx, a.Name); err != nil {
			r.logger.WithError(err).WithField("filename", a.Name).Warn("removing stale artifact failed")
			continue
		}
		removed++
	}
	return kept, removed, nil
}
