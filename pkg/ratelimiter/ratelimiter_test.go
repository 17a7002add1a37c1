package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLimiterBurstPerKey(t *testing.T) {
	kl := NewKeyed(1, 2)
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	kl.now = func() time.Time { return fixed }

	assert.True(t, kl.Allow("10.0.0.1"))
	assert.True(t, kl.Allow("10.0.0.1"))
	assert.False(t, kl.Allow("10.0.0.1"), "burst exhausted")

	// Other clients have their own bucket.
	assert.True(t, kl.Allow("10.0.0.2"))

	fixed = fixed.Add(time.Second)
	assert.True(t, kl.Allow("10.0.0.1"), "one token refilled after a second")
}

func TestKeyedLimiterSweep(t *testing.T) {
	kl := NewKeyed(5, 5)
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	kl.now = func() time.Time { return fixed }

	kl.Allow("a")
	fixed = fixed.Add(11 * time.Minute)
	kl.Allow("b")

	assert.Equal(t, 1, kl.Sweep())
	assert.Equal(t, 1, kl.Len())
}
