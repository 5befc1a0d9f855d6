// Package ratelimit wraps a vm.LLMCapability with a process-local token
// bucket, adapted down from the teacher's cluster-aware adaptive rate
// limiter (features/model/middleware) to a plain fixed-rate limiter: this
// system has no multi-process coordination layer to share capacity across
// (package goa.design/pulse, dropped per DESIGN.md), so there is nothing
// for an adaptive AIMD backoff signal to coordinate against beyond the
// single process already enforcing fuel limits.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/tjs-lang/tjs/vm"
)

// Limiter enforces a requests-per-minute ceiling on an underlying
// vm.LLMCapability.
type Limiter struct {
	next    vm.LLMCapability
	limiter *rate.Limiter
}

// Wrap returns an vm.LLMCapability that blocks each Complete call until a
// token bucket replenishing at requestsPerMinute allows it through. A
// requestsPerMinute of zero or less disables limiting and returns next
// unchanged.
func Wrap(next vm.LLMCapability, requestsPerMinute float64) vm.LLMCapability {
	if next == nil || requestsPerMinute <= 0 {
		return next
	}
	every := time.Duration(float64(time.Minute) / requestsPerMinute)
	return &Limiter{next: next, limiter: rate.NewLimiter(rate.Every(every), 1)}
}

// Complete waits for the rate limiter before delegating to the wrapped
// capability, returning early if ctx is cancelled first.
func (l *Limiter) Complete(ctx context.Context, req vm.LLMRequest) (vm.LLMResponse, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return vm.LLMResponse{}, err
	}
	return l.next.Complete(ctx, req)
}
