package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/anjiri1684/tutor_orm/logger"
	"github.com/google/uuid"
)

// ErrCacheMiss is returned by a Cache when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache backs the read-through cache of findUnique by id.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
}

const cachePrefix = "orm"

func generationKey(model string) string {
	return fmt.Sprintf("%s:gen:%s", cachePrefix, strings.ToLower(model))
}

// generation returns the model's current cache generation. Batch writes
// bump it, orphaning every entry written before.
func (c *Client) generation(ctx context.Context, model string) (int64, error) {
	raw, err := c.opts.cache.Get(ctx, generationKey(model))
	if errors.Is(err, ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

func (c *Client) recordKey(ctx context.Context, model string, id uuid.UUID) (string, error) {
	gen, err := c.generation(ctx, model)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%d:%s", cachePrefix, strings.ToLower(model), gen, id), nil
}

func (d *Delegate[M, W, U, F]) cached(ctx context.Context, id uuid.UUID) (*M, bool) {
	cache := d.client.opts.cache
	if cache == nil {
		return nil, false
	}
	key, err := d.client.recordKey(ctx, d.meta.name, id)
	if err != nil {
		logger.Warn().Err(err).Str("model", d.meta.name).Msg("cache generation lookup failed")
		return nil, false
	}
	raw, err := cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return nil, false
	}
	var m M
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	if org := d.client.orgID; org != nil {
		if got, ok := d.meta.orgOf(ctx, reflect.ValueOf(&m).Elem()); ok && got != *org {
			return nil, false
		}
	}
	d.client.opts.observer.ObserveCache(d.meta.name, true)
	return &m, true
}

func (d *Delegate[M, W, U, F]) remember(ctx context.Context, id uuid.UUID, m *M) {
	cache := d.client.opts.cache
	if cache == nil {
		return
	}
	d.client.opts.observer.ObserveCache(d.meta.name, false)
	key, err := d.client.recordKey(ctx, d.meta.name, id)
	if err != nil {
		return
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := cache.Set(ctx, key, raw); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (c *Client) invalidate(ctx context.Context, e Event) {
	cache := c.opts.cache
	if cache == nil || e.Action == ActionCreate || e.Action == ActionCreateMany {
		return
	}
	if e.Action.Many() || len(e.IDs) == 0 {
		if _, err := cache.Incr(ctx, generationKey(e.Model)); err != nil {
			logger.Warn().Err(err).Str("model", e.Model).Msg("cache generation bump failed")
		}
		return
	}
	keys := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		key, err := c.recordKey(ctx, e.Model, id)
		if err != nil {
			logger.Warn().Err(err).Str("model", e.Model).Msg("cache generation lookup failed")
			return
		}
		keys = append(keys, key)
	}
	if err := cache.Delete(ctx, keys...); err != nil {
		logger.Warn().Err(err).Str("model", e.Model).Msg("cache delete failed")
	}
}
