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
	"encoding/binary"
	"time"

	"github.com/VictoriaMetrics/fastcache"
)

const defaultLocalMaxBytes = 32 * 1024 * 1024

// FastCache is an in-process ICache over VictoriaMetrics fastcache.
// Each entry is prefixed with its expiry as unix nanoseconds; expired
// entries are dropped lazily on read.
type FastCache struct {
	cache *fastcache.Cache
	now   func() time.Time
}

func NewFastCache(maxBytes int) *FastCache {
	if maxBytes <= 0 {
		maxBytes = defaultLocalMaxBytes
	}
	return &FastCache{cache: fastcache.New(maxBytes), now: time.Now}
}

func (fc *FastCache) Get(_ context.Context, key string) (string, error) {
	raw, ok := fc.cache.HasGet(nil, []byte(key))
	if !ok || len(raw) < 8 {
		return "", ErrCacheMiss
	}
	exp := int64(binary.BigEndian.Uint64(raw[:8]))
	if exp != 0 && fc.now().UnixNano() >= exp {
		fc.cache.Del([]byte(key))
		return "", ErrCacheMiss
	}
	return string(raw[8:]), nil
}

func (fc *FastCache) Set(_ context.Context, key, value string, expiration time.Duration) error {
	buf := make([]byte, 8+len(value))
	var exp int64
	if expiration > 0 {
		exp = fc.now().Add(expiration).UnixNano()
	}
	binary.BigEndian.PutUint64(buf[:8], uint64(exp))
	copy(buf[8:], value)
	fc.cache.Set([]byte(key), buf)
	return nil
}

func (fc *FastCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		fc.cache.Del([]byte(k))
	}
	return nil
}

// Reset drops every entry.
func (fc *FastCache) Reset() {
	fc.cache.Reset()
}
