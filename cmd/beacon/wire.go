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

//go:build wireinject
// +build wireinject

package main

import (
	"github.com/go-arcade/beacon/internal/engine/bootstrap"
	"github.com/go-arcade/beacon/internal/engine/config"
	"github.com/go-arcade/beacon/internal/engine/repo"
	"github.com/go-arcade/beacon/internal/engine/router"
	"github.com/go-arcade/beacon/internal/engine/service"
	"github.com/go-arcade/beacon/pkg/cache"
	"github.com/go-arcade/beacon/pkg/database"
	"github.com/go-arcade/beacon/pkg/log"
	"github.com/go-arcade/beacon/pkg/metrics"
	"github.com/go-arcade/beacon/pkg/shutdown"
	"github.com/go-arcade/beacon/pkg/trace"
	"github.com/google/wire"
)

var infraProviderSet = wire.NewSet(
	// configuration
	config.ProviderSet,
	// logger, database, cache, metrics
	log.ProviderSet,
	database.ProviderSet,
	cache.ProviderSet,
	metrics.ProviderSet,
	// metadata store
	repo.ProviderSet,
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		infraProviderSet,
		// seo, diagnostics, autofill
		service.ProviderSet,
		// tracing, drain state, http
		trace.ProviderSet,
		shutdown.ProviderSet,
		router.ProviderSet,
		// application
		bootstrap.ProviderSet,
	))
}

func initServices(configPath string) (*service.Services, func(), error) {
	panic(wire.Build(
		infraProviderSet,
		service.ProviderSet,
	))
}
