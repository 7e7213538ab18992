package hardrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnTick_WakesDueSleeperAndPendsSwitch(t *testing.T) {
	k := newTestKernel(t, Config{TickHz: 1000})

	id, err := k.CreateTask(func(any) {}, nil, newStack(), WithPriority(0))
	require.NoError(t, err)

	k.crit.enter()
	task := k.tasks[id]
	_, perr := k.ready[task.priority].pop()
	require.NoError(t, perr)
	task.state = stateSleep
	task.wakeTick = 2
	k.crit.exit()

	k.pending.Store(false)
	k.TickFromISR()
	assert.False(t, k.pending.Load(), "wake_tick not yet reached")
	assert.Equal(t, stateSleep, task.state)

	k.TickFromISR()
	assert.True(t, k.pending.Load(), "sleeper became due on this tick")
	assert.Equal(t, stateReady, task.state)
}

func TestOnTick_IgnoredWhenSourceIsInternal(t *testing.T) {
	k := newTestKernel(t, Config{})
	k.cfg.TickSrc = Internal

	before := k.TickNow()
	k.TickFromISR()
	assert.Equal(t, before, k.TickNow(), "external tick must no-op under an Internal source")
}

func TestOnTick_NeverAdvancesOrDecrementsIdleTask(t *testing.T) {
	k := newTestKernel(t, Config{})

	k.crit.enter()
	k.current = idleTaskID
	idle := k.tasks[idleTaskID]
	idle.sliceCfg = 1
	idle.sliceLeft = 1
	k.crit.exit()

	k.TickFromISR()
	assert.Equal(t, uint32(1), idle.sliceLeft, "idle's slice is never decremented")
}

func TestOnTick_DecrementsRunningTaskSliceUnderRR(t *testing.T) {
	k := newTestKernel(t, Config{Policy: RR, DefaultSlice: 2})

	id, err := k.CreateTask(func(any) {}, nil, newStack(), WithPriority(0))
	require.NoError(t, err)

	k.crit.enter()
	k.current = id
	task := k.tasks[id]
	task.state = stateReady
	k.crit.exit()

	k.TickFromISR()
	assert.Equal(t, uint32(1), task.sliceLeft)

	k.pending.Store(false)
	k.TickFromISR()
	assert.Equal(t, uint32(0), task.sliceLeft)
	assert.True(t, k.pending.Load(), "exhausted slice pends a switch")
}

func TestOnTick_WraparoundComparisonStaysCorrect(t *testing.T) {
	k := newTestKernel(t, Config{})

	id, err := k.CreateTask(func(any) {}, nil, newStack(), WithPriority(0))
	require.NoError(t, err)

	k.crit.enter()
	task := k.tasks[id]
	_, perr := k.ready[task.priority].pop()
	require.NoError(t, perr)
	task.state = stateSleep
	task.wakeTick = 2 // wraps past 0xFFFFFFFF
	k.tickCount.Store(0xFFFFFFFF)
	k.crit.exit()

	k.pending.Store(false)
	k.TickFromISR() // tick -> 0
	assert.Equal(t, stateSleep, task.state, "not due yet across the wrap")

	k.TickFromISR() // tick -> 1
	assert.Equal(t, stateSleep, task.state)

	k.TickFromISR() // tick -> 2, due
	assert.Equal(t, stateReady, task.state)
}
