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
	"fmt"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(ProvideICache)

// ProvideICache builds the backend named by conf.Mode. The returned cache
// is nil for mode "none"; cleanup releases the redis client if one was opened.
func ProvideICache(conf Config) (ICache, func(), error) {
	switch conf.Mode {
	case "redis":
		client, err := NewRedis(conf.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisCache(client), func() { _ = client.Close() }, nil
	case "", "local":
		return NewFastCache(conf.LocalMaxBytes), func() {}, nil
	case "none":
		return nil, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache mode %q", conf.Mode)
	}
}

var (
	_ ICache = (*RedisCache)(nil)
	_ ICache = (*FastCache)(nil)
)
