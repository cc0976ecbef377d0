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
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// ICache is the minimal key/value surface used by the metadata store.
type ICache interface {
	// Get returns the cached value or ErrCacheMiss.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key. A zero expiration keeps it until evicted.
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	// Del removes keys; missing keys are ignored.
	Del(ctx context.Context, keys ...string) error
}

// Config selects the cache backend.
type Config struct {
	// Mode is one of "redis", "local" or "none".
	Mode          string
	Prefix        string
	TTL           time.Duration // seconds
	LocalMaxBytes int
	Redis         Redis
}

func SetDefaults() Config {
	return Config{
		Mode:          "local",
		Prefix:        "beacon:",
		TTL:           300,
		LocalMaxBytes: defaultLocalMaxBytes,
		Redis: Redis{
			Mode:         "single",
			Address:      "127.0.0.1:6379",
			PoolSize:     10,
			DialTimeout:  5,
			ReadTimeout:  3,
			WriteTimeout: 3,
		},
	}
}

// Expiration converts the configured TTL in seconds to a duration.
func (c Config) Expiration() time.Duration {
	if c.TTL <= 0 {
		return 0
	}
	return c.TTL * time.Second
}
