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

package seo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/go-arcade/beacon/internal/engine/config"
	"github.com/go-arcade/beacon/pkg/log"
	"github.com/go-arcade/beacon/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/go-arcade/beacon/seo"

// Injector renders the document template with the metadata of a path.
// The template is read once and kept for the life of the process.
type Injector struct {
	svc          *Service
	templatePath string
	metrics      *metrics.Metrics
	readFile     func(string) ([]byte, error)

	mu       sync.Mutex
	template atomic.Pointer[string]
}

func NewInjector(svc *Service, conf config.SeoConfig, m *metrics.Metrics) *Injector {
	return &Injector{
		svc:          svc,
		templatePath: conf.TemplatePath,
		metrics:      m,
		readFile:     os.ReadFile,
	}
}

// Template returns the cached template, reading it on first use. A failed
// read is not cached.
func (i *Injector) Template() (string, error) {
	if t := i.template.Load(); t != nil {
		return *t, nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if t := i.template.Load(); t != nil {
		return *t, nil
	}
	b, err := i.readFile(i.templatePath)
	if err != nil {
		return "", fmt.Errorf("read document template %s: %w", i.templatePath, err)
	}
	t := string(b)
	i.template.Store(&t)
	log.Infow("document template loaded", "path", i.templatePath, "bytes", len(b))
	return t, nil
}

// Render returns the template with a fresh metadata block for path. Once
// a template is available every failure degrades to the unmodified
// template; an error is returned only when no template can be read.
func (i *Injector) Render(ctx context.Context, path string) (doc string, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "seo.Render")
	span.SetAttributes(attribute.String("url.path", path))
	defer span.End()

	tpl, err := i.Template()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	fallback := func(reason any) {
		log.Warnw("serving document without metadata", "path", path, "reason", reason)
		span.SetAttributes(attribute.String("seo.outcome", "fallback"))
		i.metrics.ObserveRender("fallback")
		doc, err = tpl, nil
	}
	defer func() {
		if r := recover(); r != nil {
			fallback(r)
		}
	}()

	res, rerr := i.svc.ResolvePath(ctx, path)
	if rerr != nil {
		fallback(rerr)
		return doc, err
	}
	jsonLD, rerr := EncodeJSONLD(res.StructuredData)
	if rerr != nil {
		fallback(rerr)
		return doc, err
	}

	span.SetAttributes(
		attribute.String("seo.outcome", "injected"),
		attribute.String("seo.context", string(res.Context)),
	)
	i.metrics.ObserveRender("injected")
	return Inject(tpl, RenderBlock(res.Bundle, jsonLD)), nil
}
