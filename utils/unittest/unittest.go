package unittest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// RequireReturnsBefore requires that the given function returns before the
// duration expires.
func RequireReturnsBefore(t testing.TB, f func(), duration time.Duration, msg string) {
	done := make(chan struct{})

	go func() {
		f()
		close(done)
	}()

	select {
	case <-time.After(duration):
		require.Fail(t, "function did not return in time", msg)
	case <-done:
		return
	}
}

// RequireClosedBefore requires that the given channel closes before the
// duration expires.
func RequireClosedBefore(t testing.TB, ch <-chan struct{}, duration time.Duration, msg string) {
	RequireReturnsBefore(t, func() { <-ch }, duration, msg)
}
