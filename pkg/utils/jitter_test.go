package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelay_NextWithinRange(t *testing.T) {
	d := Delay{Min: 200 * time.Millisecond, Max: 800 * time.Millisecond}
	for range 1000 {
		v := d.Next()
		assert.GreaterOrEqual(t, v, d.Min)
		assert.LessOrEqual(t, v, d.Max)
	}
}

func TestDelay_Degenerate(t *testing.T) {
	assert.Equal(t, time.Duration(0), Delay{}.Next())
	assert.Equal(t, 5*time.Millisecond, Delay{Min: 5 * time.Millisecond, Max: time.Millisecond}.Next())
	assert.NoError(t, Delay{}.Sleep(context.Background()))
}

func TestDelay_SleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Delay{Min: time.Minute, Max: time.Minute}.Sleep(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
