package particlefx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameScheduler_RunsOncePerRequest(t *testing.T) {
	fs := NewFrameScheduler()
	now := time.Unix(100, 0)
	var got []time.Time
	h := fs.Request(func(t time.Time) { got = append(got, t) })

	require.NotZero(t, h)
	assert.Equal(t, 1, fs.Pending())
	assert.Equal(t, 1, fs.RunFrame(now))
	assert.Equal(t, 0, fs.RunFrame(now.Add(time.Second)))
	assert.Equal(t, []time.Time{now}, got)
}

func TestFrameScheduler_RerequestRunsNextFrame(t *testing.T) {
	fs := NewFrameScheduler()
	runs := 0
	var loop FrameCallback
	loop = func(time.Time) {
		runs++
		fs.Request(loop)
	}
	fs.Request(loop)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 1, fs.RunFrame(time.Now()))
	}
	assert.Equal(t, 3, runs)
	assert.Equal(t, 1, fs.Pending())
}

func TestFrameScheduler_Cancel(t *testing.T) {
	fs := NewFrameScheduler()
	ran := false
	h := fs.Request(func(time.Time) { ran = true })
	fs.Cancel(h)
	fs.Cancel(h)
	fs.Cancel(12345)

	assert.Zero(t, fs.RunFrame(time.Now()))
	assert.False(t, ran)
}

func TestFrameScheduler_CancelDuringFrameSkipsLaterCallback(t *testing.T) {
	fs := NewFrameScheduler()
	var second FrameHandle
	secondRan := false
	fs.Request(func(time.Time) { fs.Cancel(second) })
	second = fs.Request(func(time.Time) { secondRan = true })

	assert.Equal(t, 1, fs.RunFrame(time.Now()))
	assert.False(t, secondRan)
}
