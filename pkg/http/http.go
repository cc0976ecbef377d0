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

package http

import (
	"fmt"
	"time"
)

type Http struct {
	Host            string
	Port            int
	AccessLog       bool
	ExposeMetrics   bool
	Pprof           bool
	AllowOrigins    string
	BodyLimit       int // bytes
	ReadTimeout     int // seconds
	WriteTimeout    int // seconds
	IdleTimeout     int // seconds
	ShutdownTimeout int // seconds
	DrainDelay      int // seconds /health reports 503 before the listener closes
	TLS             TLS
}

type TLS struct {
	CertFile string
	KeyFile  string
}

func SetDefaults() Http {
	return Http{
		Host:            "0.0.0.0",
		Port:            8080,
		AccessLog:       true,
		ExposeMetrics:   true,
		AllowOrigins:    "*",
		BodyLimit:       4 * 1024 * 1024,
		ReadTimeout:     30,
		WriteTimeout:    30,
		IdleTimeout:     60,
		ShutdownTimeout: 10,
	}
}

func (h Http) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func (h Http) ReadTimeoutDuration() time.Duration     { return seconds(h.ReadTimeout) }
func (h Http) WriteTimeoutDuration() time.Duration    { return seconds(h.WriteTimeout) }
func (h Http) IdleTimeoutDuration() time.Duration     { return seconds(h.IdleTimeout) }
func (h Http) ShutdownTimeoutDuration() time.Duration { return seconds(h.ShutdownTimeout) }
func (h Http) DrainDelayDuration() time.Duration      { return seconds(h.DrainDelay) }
