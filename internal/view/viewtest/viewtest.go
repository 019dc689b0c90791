// Package viewtest drives view tasks deterministically from tests.
package viewtest

import (
	"time"

	"mottars_backend/internal/view"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

// Start is the fake clock origin shared by package tests.
var Start = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// NewClock returns a fake clock set to Start.
func NewClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(Start)
}

// Advance moves clk forward by d and waits until every task of r that became
// due has finished running.
func Advance(t require.TestingT, clk *clockwork.FakeClock, r *view.Registry, d time.Duration) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	clk.Advance(d)
	require.Eventually(t, func() bool { return r.Due() == 0 }, 2*time.Second, time.Millisecond)
}
