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

	"github.com/go-arcade/beacon/pkg/log"
	"github.com/google/wire"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var ProviderSet = wire.NewSet(ProvideTracerProvider)

// ProvideTracerProvider depends on the logger so export failures reach the
// configured sink.
func ProvideTracerProvider(conf Conf, _ *log.Logger) (*sdktrace.TracerProvider, func(), error) {
	return NewTracerProvider(context.Background(), conf)
}
