package classify

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/local/pressclip/internal/metrics"
)

// Breaker is an in-process cooldown breaker per provider. After a transient
// failure the provider is skipped until its cooldown expires; consecutive
// failures double the cooldown up to a cap. State lives for one run only.
type Breaker struct {
	mu          sync.Mutex
	baseBackoff time.Duration
	maxBackoff  time.Duration
	states      map[string]*breakerState

	now func() time.Time // overridable in tests
}

type breakerState struct {
	failures int
	retryAt  time.Time
}

// NewBreaker creates a breaker; non-positive durations get defaults.
func NewBreaker(baseBackoff, maxBackoff time.Duration) *Breaker {
	if baseBackoff <= 0 {
		baseBackoff = 30 * time.Second
	}
	if maxBackoff <= 0 {
		maxBackoff = 5 * time.Minute
	}
	return &Breaker{
		baseBackoff: baseBackoff,
		maxBackoff:  maxBackoff,
		states:      make(map[string]*breakerState),
		now:         time.Now,
	}
}

// IsOpen reports whether the provider is still in cooldown.
func (b *Breaker) IsOpen(provider string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, ok := b.states[provider]
	if !ok {
		return false
	}
	return b.now().Before(st.retryAt)
}

// Trip records a transient failure and extends the provider's cooldown with
// exponential backoff.
func (b *Breaker) Trip(provider string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, ok := b.states[provider]
	if !ok {
		st = &breakerState{}
		b.states[provider] = st
	}
	st.failures++

	backoff := b.baseBackoff
	for i := 1; i < st.failures; i++ {
		backoff *= 2
		if backoff >= b.maxBackoff {
			backoff = b.maxBackoff
			break
		}
	}
	st.retryAt = b.now().Add(backoff)

	metrics.BreakerOpened(provider)
	log.Warn().
		Str("provider", provider).
		Dur("cooldown", backoff).
		Int("failures", st.failures).
		Msg("provider breaker opened")
}

// Reset clears the provider's breaker after a successful call.
func (b *Breaker) Reset(provider string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.states[provider]; !ok {
		return
	}
	delete(b.states, provider)

	metrics.BreakerClosed(provider)
	log.Info().Str("provider", provider).Msg("provider breaker closed")
}
