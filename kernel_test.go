package hardrt

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ExoSpaceLabs/hardrt/port"
)

func newStack() []byte { return make([]byte, MinStackWords*8) }

func newTestKernel(t *testing.T, cfg Config) *Kernel {
	t.Helper()
	cfg.TickSrc = External
	cfg.Logger = noopLogger{}
	k, err := New(cfg, port.NewNullPort())
	require.NoError(t, err)
	t.Cleanup(k.Shutdown)
	return k
}

// driveTicks runs TickFromISR in a loop, with small real-time gaps so the
// idle task's poll-based IdleWait gets a chance to observe pended switches
// and goroutines actually interleave, until stop is closed.
func driveTicks(k *Kernel, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
			k.TickFromISR()
			time.Sleep(50 * time.Microsecond)
		}
	}
}

func TestKernel_SleepAccuracy(t *testing.T) {
	k := newTestKernel(t, Config{TickHz: 1000})

	var mu sync.Mutex
	var wakes []uint32
	done := make(chan struct{})

	_, err := k.CreateTask(func(any) {
		for i := 0; i < 5; i++ {
			k.Sleep(10)
			mu.Lock()
			wakes = append(wakes, k.TickNow())
			mu.Unlock()
		}
		close(done)
	}, nil, newStack(), WithPriority(0))
	require.NoError(t, err)

	stop := make(chan struct{})
	go driveTicks(k, stop)
	go func() { _ = k.Start() }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not complete five sleeps in time")
	}
	close(stop)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, wakes, 5)
	assert.GreaterOrEqual(t, wakes[4], uint32(50))
	assert.LessOrEqual(t, wakes[4], uint32(50+20))
}

func TestKernel_PriorityDominance(t *testing.T) {
	k := newTestKernel(t, Config{TickHz: 1000, Policy: Priority})

	var highCount int64
	var lowFirstObservedHigh int64
	var once sync.Once
	doneHigh := make(chan struct{})

	_, err := k.CreateTask(func(any) {
		for i := 0; i < 2000; i++ {
			atomic.AddInt64(&highCount, 1)
			k.Yield()
		}
		k.Sleep(1)
		close(doneHigh)
		for {
			k.Yield()
		}
	}, nil, newStack(), WithPriority(0), WithTimeslice(0))
	require.NoError(t, err)

	_, err = k.CreateTask(func(any) {
		for {
			once.Do(func() {
				atomic.StoreInt64(&lowFirstObservedHigh, atomic.LoadInt64(&highCount))
			})
			k.Yield()
		}
	}, nil, newStack(), WithPriority(1), WithTimeslice(0))
	require.NoError(t, err)

	stop := make(chan struct{})
	go driveTicks(k, stop)
	go func() { _ = k.Start() }()

	select {
	case <-doneHigh:
	case <-time.After(2 * time.Second):
		t.Fatal("high priority task never finished")
	}
	require.Eventually(t, func() bool { return atomic.LoadInt64(&lowFirstObservedHigh) > 0 }, time.Second, time.Millisecond)
	close(stop)

	assert.GreaterOrEqual(t, atomic.LoadInt64(&lowFirstObservedHigh), int64(2000))
}

func TestKernel_FIFOWakeOrder(t *testing.T) {
	k := newTestKernel(t, Config{TickHz: 1000})

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	wg.Add(3)

	spawn := func(id int, ticks uint32) {
		_, err := k.CreateTask(func(any) {
			k.Sleep(uint32(ticks) * 1)
			mu.Lock()
			order = append(order, id)
			mu.Unlock()
			wg.Done()
			for {
				k.Yield()
			}
		}, nil, newStack(), WithPriority(1))
		require.NoError(t, err)
	}
	spawn(1, 1)
	spawn(2, 2)
	spawn(3, 3)

	stop := make(chan struct{})
	go driveTicks(k, stop)
	go func() { _ = k.Start() }()

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sleepers did not all wake in time")
	}
	close(stop)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestKernel_TickWraparound(t *testing.T) {
	k := newTestKernel(t, Config{TickHz: 1000})
	k.tickCount.Store(0xFFFFFFF0)

	var wakeCount int64
	done := make(chan struct{})

	_, err := k.CreateTask(func(any) {
		k.Sleep(10)
		atomic.AddInt64(&wakeCount, 1)
		close(done)
		for {
			k.Yield()
		}
	}, nil, newStack(), WithPriority(0))
	require.NoError(t, err)

	go func() { _ = k.Start() }()

	for i := 0; i < 32; i++ {
		k.TickFromISR()
		time.Sleep(50 * time.Microsecond)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never woke")
	}
	assert.EqualValues(t, 1, atomic.LoadInt64(&wakeCount))
}

func TestKernel_CreateTaskRejectsShortStack(t *testing.T) {
	k := newTestKernel(t, Config{})
	_, err := k.CreateTask(func(any) {}, nil, make([]byte, 8), WithPriority(0))
	assert.ErrorIs(t, err, ErrInvalidTask)
}

func TestKernel_CreateTaskRejectsNoSlot(t *testing.T) {
	k := newTestKernel(t, Config{})
	for i := 0; i < MaxTasks-1; i++ {
		_, err := k.CreateTask(func(any) { select {} }, nil, newStack(), WithPriority(1))
		require.NoError(t, err)
	}
	_, err := k.CreateTask(func(any) {}, nil, newStack(), WithPriority(1))
	assert.ErrorIs(t, err, ErrNoSlot)
}
