package utils

import (
	"context"
	"math/rand/v2"
	"time"
)

// Delay is a randomized pause drawn uniformly from [Min, Max]
type Delay struct {
	Min time.Duration
	Max time.Duration
}

// Next draws one duration. A range with Max <= Min always yields Min.
func (d Delay) Next() time.Duration {
	if d.Max <= d.Min {
		return max(d.Min, 0)
	}
	return d.Min + rand.N(d.Max-d.Min+1)
}

// Sleep waits for a drawn duration or until ctx is done
func (d Delay) Sleep(ctx context.Context) error {
	wait := d.Next()
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
