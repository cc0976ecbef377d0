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

package repo

import (
	"github.com/go-arcade/beacon/pkg/cache"
	"github.com/go-arcade/beacon/pkg/database"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(ProvideStore, wire.Bind(new(Store), new(*MetadataStore)))

// ProvideStore migrates the schema when configured and builds the store.
func ProvideStore(db database.IDatabase, c cache.ICache, cacheConf cache.Config, dbConf database.Database) (*MetadataStore, error) {
	if dbConf.AutoMigrate {
		if err := AutoMigrate(db.Database()); err != nil {
			return nil, err
		}
	}
	return NewMetadataStore(db, c, cacheConf), nil
}

var _ Store = (*MetadataStore)(nil)
