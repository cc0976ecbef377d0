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

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetDefaults(t *testing.T) {
	c := Conf{Protocol: ProtocolHTTP, SampleRatio: 3}
	c.SetDefaults()
	assert.Equal(t, "beacon", c.ServiceName)
	assert.Equal(t, "localhost:4318", c.Endpoint)
	assert.Equal(t, 1.0, c.SampleRatio)
	assert.Equal(t, 5, c.BatchTimeout)
	assert.Equal(t, 30, c.ExportTimeout)

	g := Conf{}
	g.SetDefaults()
	assert.Equal(t, ProtocolGRPC, g.Protocol)
	assert.Equal(t, "localhost:4317", g.Endpoint)
}

func TestNewTracerProvider_DisabledStillSamples(t *testing.T) {
	tp, cleanup, err := NewTracerProvider(context.Background(), Conf{})
	require.NoError(t, err)
	defer cleanup()

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.SpanContext().IsSampled())
	assert.NotNil(t, otel.GetTextMapPropagator())
}

func TestNewTracerProvider_UnsupportedProtocol(t *testing.T) {
	_, _, err := NewTracerProvider(context.Background(), Conf{Enabled: true, Protocol: "zipkin"})
	assert.ErrorContains(t, err, "unsupported trace protocol")
}
