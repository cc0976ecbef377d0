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

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-arcade/beacon/internal/engine/config"
	"github.com/go-arcade/beacon/internal/engine/router"
	"github.com/go-arcade/beacon/internal/engine/service"
	"github.com/go-arcade/beacon/pkg/log"
	"github.com/go-arcade/beacon/pkg/shutdown"
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var ProviderSet = wire.NewSet(NewApp)

type App struct {
	HttpApp  *fiber.App
	Services *service.Services
	AppConf  *config.AppConfig
	Shutdown *shutdown.Manager
	Tracer   *sdktrace.TracerProvider
}

type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	rt *router.Router,
	services *service.Services,
	appConf *config.AppConfig,
	tp *sdktrace.TracerProvider,
) *App {
	return &App{
		HttpApp:  rt.Router(),
		Services: services,
		AppConf:  appConf,
		Shutdown: rt.Shutdown,
		Tracer:   tp,
	}
}

func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, err
	}
	log.Infow("application initialized", "config", configFile)
	return app, cleanup, nil
}

// Run serves HTTP until a termination signal, then shuts down within the
// configured timeout and runs cleanup.
func Run(app *App, cleanup func()) {
	httpConf := app.AppConf.Http

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	failed := make(chan error, 1)
	go func() {
		addr := httpConf.Addr()
		log.Infow("HTTP listener started", "address", addr, "tls", httpConf.TLS.CertFile != "")
		var err error
		if httpConf.TLS.CertFile != "" && httpConf.TLS.KeyFile != "" {
			err = app.HttpApp.ListenTLS(addr, httpConf.TLS.CertFile, httpConf.TLS.KeyFile)
		} else {
			err = app.HttpApp.Listen(addr)
		}
		if err != nil {
			log.Errorw("HTTP listener failed", "address", addr, "error", err)
			failed <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Infof("received signal: %v, shutting down gracefully...", sig)
	case <-failed:
	}
	if app.Shutdown != nil && app.Shutdown.Shutdown() {
		if d := httpConf.DrainDelayDuration(); d > 0 {
			log.Infow("draining before shutdown", "delay", d)
			time.Sleep(d)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), httpConf.ShutdownTimeoutDuration())
	defer cancel()
	if err := app.HttpApp.ShutdownWithContext(ctx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	} else {
		log.Info("HTTP server shut down gracefully")
	}

	if cleanup != nil {
		cleanup()
	}
	log.Info("server shutdown complete")
}
