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

package database

import (
	"context"
	"errors"
	"time"

	"github.com/go-arcade/beacon/pkg/log"
	"github.com/go-arcade/beacon/pkg/retry"
	"github.com/google/wire"
	"gorm.io/gorm"
)

var ProviderSet = wire.NewSet(ProvideDatabase, wire.Bind(new(IDatabase), new(*GormDB)))

// ProvideDatabase opens the configured database, retrying with backoff while
// the server is unreachable. The logger argument orders initialisation so
// connection logs use the configured sink.
func ProvideDatabase(conf Database, _ *log.Logger) (*GormDB, func(), error) {
	var db *gorm.DB
	err := retry.Do(context.Background(), func(context.Context) error {
		var err error
		db, err = NewDatabase(conf)
		return err
	},
		retry.WithAttempts(conf.ConnectRetries+1),
		retry.WithBackoff(retry.Jitter(retry.Exponential(500*time.Millisecond, 10*time.Second))),
		retry.WithRetryIf(func(err error) bool { return !errors.Is(err, ErrUnsupportedType) }),
		retry.OnRetry(func(attempt int, err error) {
			log.Warnw("database connection failed, retrying", "attempt", attempt, "error", err)
		}),
	)
	if err != nil {
		return nil, nil, err
	}
	g := NewGormDB(db)
	cleanup := func() {
		if err := g.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}
	return g, cleanup, nil
}

var _ IDatabase = (*GormDB)(nil)
