package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsEverythingBeforeStop(t *testing.T) {
	p := NewPool(4, 16)
	var n atomic.Int64
	for i := 0; i < 100; i++ {
		p.Submit(func() { n.Add(1) })
	}
	p.Stop()
	assert.EqualValues(t, 100, n.Load())
}

func TestPoolSurvivesPanics(t *testing.T) {
	p := NewPool(1, 4)
	var n atomic.Int64
	p.Submit(func() { panic("boom") })
	p.Submit(func() { n.Add(1) })
	p.Stop()
	assert.EqualValues(t, 1, n.Load())
}

func TestSubmitAfterStopIsDropped(t *testing.T) {
	p := NewPool(1, 4)
	p.Stop()
	p.Stop()
	assert.NotPanics(t, func() { p.Submit(func() {}) })
}
