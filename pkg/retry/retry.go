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

// Package retry runs an operation until it succeeds, the attempt budget is
// spent or the context ends.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Backoff returns the wait before the given attempt (1-based).
type Backoff func(attempt int) time.Duration

// Fixed waits d between every attempt.
func Fixed(d time.Duration) Backoff {
	return func(int) time.Duration { return d }
}

// Exponential doubles base on every attempt, capped at limit.
func Exponential(base, limit time.Duration) Backoff {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		d := base
		for i := 1; i < attempt; i++ {
			d *= 2
			if limit > 0 && d >= limit {
				return limit
			}
		}
		if limit > 0 && d > limit {
			return limit
		}
		return d
	}
}

// Jitter spreads each wait uniformly over [d/2, d).
func Jitter(b Backoff) Backoff {
	return func(attempt int) time.Duration {
		d := b(attempt)
		if d <= 1 {
			return d
		}
		half := d / 2
		return half + rand.N(d-half)
	}
}

type options struct {
	attempts int
	backoff  Backoff
	retryIf  func(error) bool
	onRetry  func(attempt int, err error)
}

type Option func(*options)

// WithAttempts sets the total number of tries, including the first.
func WithAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.attempts = n
		}
	}
}

func WithBackoff(b Backoff) Option {
	return func(o *options) { o.backoff = b }
}

// WithRetryIf stops retrying as soon as fn returns false.
func WithRetryIf(fn func(error) bool) Option {
	return func(o *options) { o.retryIf = fn }
}

// OnRetry is called after a failed attempt that will be retried.
func OnRetry(fn func(attempt int, err error)) Option {
	return func(o *options) { o.onRetry = fn }
}

// Unrecoverable marks err so Do returns it immediately.
func Unrecoverable(err error) error {
	if err == nil {
		return nil
	}
	return unrecoverable{err}
}

type unrecoverable struct{ error }

func (u unrecoverable) Unwrap() error { return u.error }

// Do calls fn until it returns nil. The last error is returned when the
// attempts run out; the context error wins if ctx ends while waiting.
func Do(ctx context.Context, fn func(ctx context.Context) error, opts ...Option) error {
	o := options{
		attempts: 3,
		backoff:  Exponential(100*time.Millisecond, 5*time.Second),
		retryIf:  func(error) bool { return true },
	}
	for _, opt := range opts {
		opt(&o)
	}

	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		var u unrecoverable
		if errors.As(err, &u) {
			return u.error
		}
		if attempt >= o.attempts || !o.retryIf(err) {
			return err
		}
		if o.onRetry != nil {
			o.onRetry(attempt, err)
		}

		timer := time.NewTimer(o.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
