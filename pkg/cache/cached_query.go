// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/beacon/pkg/log"
)

type refreshKey struct{}

// WithRefresh marks ctx so CachedQuery.Get skips the cached copy, loads
// from the source and rewrites the entry.
func WithRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, refreshKey{}, true)
}

func refreshing(ctx context.Context) bool {
	v, _ := ctx.Value(refreshKey{}).(bool)
	return v
}

// KeyFunc builds a cache key from query parameters.
type KeyFunc func(params ...any) string

// QueryFunc loads the value from the source of truth.
type QueryFunc[T any] func(ctx context.Context) (T, error)

// PrefixKey returns a KeyFunc joining prefix and params with ':'.
func PrefixKey(prefix string) KeyFunc {
	return func(params ...any) string {
		if len(params) == 0 {
			return prefix
		}
		parts := make([]string, 0, len(params)+1)
		parts = append(parts, prefix)
		for _, p := range params {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, ":")
	}
}

// CachedQuery implements cache-aside reads over an ICache. A nil cache
// turns it into a pass-through.
type CachedQuery[T any] struct {
	cache     ICache
	keyFunc   KeyFunc
	ttl       time.Duration
	logPrefix string
}

type CachedQueryOption[T any] func(*CachedQuery[T])

func WithTTL[T any](ttl time.Duration) CachedQueryOption[T] {
	return func(cq *CachedQuery[T]) {
		cq.ttl = ttl
	}
}

func WithLogPrefix[T any](prefix string) CachedQueryOption[T] {
	return func(cq *CachedQuery[T]) {
		cq.logPrefix = prefix
	}
}

func NewCachedQuery[T any](cache ICache, keyFunc KeyFunc, opts ...CachedQueryOption[T]) *CachedQuery[T] {
	cq := &CachedQuery[T]{
		cache:     cache,
		keyFunc:   keyFunc,
		ttl:       5 * time.Minute,
		logPrefix: "[CachedQuery]",
	}
	for _, opt := range opts {
		opt(cq)
	}
	return cq
}

// Get returns the cached value for params, calling query on a miss and
// storing its result. Cache failures are logged and never returned.
func (cq *CachedQuery[T]) Get(ctx context.Context, query QueryFunc[T], params ...any) (T, error) {
	var zero T
	key := cq.keyFunc(params...)

	if cq.cache != nil && !refreshing(ctx) {
		data, err := cq.cache.Get(ctx, key)
		switch {
		case err == nil:
			var result T
			if err := sonic.UnmarshalString(data, &result); err == nil {
				log.Debugw(cq.logPrefix+" cache hit", "key", key)
				return result, nil
			}
			log.Warnw(cq.logPrefix+" failed to unmarshal cached data", "key", key, "error", err)
		case !errors.Is(err, ErrCacheMiss):
			log.Warnw(cq.logPrefix+" cache get error", "key", key, "error", err)
		}
	}

	result, err := query(ctx)
	if err != nil {
		return zero, err
	}

	if cq.cache != nil {
		data, err := sonic.MarshalString(result)
		if err != nil {
			log.Warnw(cq.logPrefix+" failed to marshal result for caching", "key", key, "error", err)
			return result, nil
		}
		if err := cq.cache.Set(ctx, key, data, cq.ttl); err != nil {
			log.Warnw(cq.logPrefix+" failed to cache result", "key", key, "error", err)
		}
	}
	return result, nil
}

// Invalidate removes the entry for params.
func (cq *CachedQuery[T]) Invalidate(ctx context.Context, params ...any) error {
	if cq.cache == nil {
		return nil
	}
	key := cq.keyFunc(params...)
	if err := cq.cache.Del(ctx, key); err != nil {
		log.Warnw(cq.logPrefix+" failed to invalidate cache", "key", key, "error", err)
		return err
	}
	log.Debugw(cq.logPrefix+" cache invalidated", "key", key)
	return nil
}
