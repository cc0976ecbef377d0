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

package metrics

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "beacon"

// MetricsConfig toggles the collectors and the /metrics endpoint.
type MetricsConfig struct {
	Enable bool
}

func SetDefaults() MetricsConfig {
	return MetricsConfig{Enable: true}
}

// Metrics owns a private registry and the engine counters. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	render          *prometheus.CounterVec
	globalsRefresh  *prometheus.CounterVec
	diagnosticsRuns *prometheus.CounterVec
	autofillRuns    *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		render: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_render_total",
			Help:      "Document renders by outcome (injected, fallback).",
		}, []string{"outcome"}),
		globalsRefresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "globals_refresh_total",
			Help:      "Globals snapshot reloads by result.",
		}, []string{"result"}),
		diagnosticsRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_runs_total",
			Help:      "Diagnostics requests by cache outcome (hit, miss).",
		}, []string{"cache"}),
		autofillRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "autofill_runs_total",
			Help:      "Autofill runs by operation, mode and final state.",
		}, []string{"operation", "mode", "state"}),
	}
	registry.MustRegister(m.render, m.globalsRefresh, m.diagnosticsRuns, m.autofillRuns)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveRender(outcome string) {
	if m == nil {
		return
	}
	m.render.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveGlobalsRefresh(result string) {
	if m == nil {
		return
	}
	m.globalsRefresh.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveDiagnostics(cache string) {
	if m == nil {
		return
	}
	m.diagnosticsRuns.WithLabelValues(cache).Inc()
}

func (m *Metrics) ObserveAutofill(operation, mode, state string) {
	if m == nil {
		return
	}
	m.autofillRuns.WithLabelValues(operation, mode, state).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the process-wide Metrics used by the server.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New()
	})
	return defaultMetrics
}
