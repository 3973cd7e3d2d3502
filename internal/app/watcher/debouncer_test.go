package watcher

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Debouncer_Trigger(t *testing.T) {
	var (
		mu            sync.Mutex
		called        int
		receivedFiles []string
	)

	d := NewDebouncer(50*time.Millisecond, func(files []string) {
		mu.Lock()
		defer mu.Unlock()

		called++
		receivedFiles = files
	})
	defer d.Stop()

	d.Trigger("palette.yaml")
	d.Trigger("brand.json")
	d.Trigger("accents.yaml")

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	assert.Equal(t, 1, called)
	assert.Equal(t, []string{"accents.yaml", "brand.json", "palette.yaml"}, receivedFiles)
	mu.Unlock()
}

func Test_Debouncer_CoalescesRapidEvents(t *testing.T) {
	var callCount atomic.Int32

	d := NewDebouncer(50*time.Millisecond, func(files []string) {
		callCount.Add(1)
	})
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger("brand.yaml")
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, int32(1), callCount.Load())
}

func Test_Debouncer_Stop(t *testing.T) {
	var called atomic.Bool

	d := NewDebouncer(50*time.Millisecond, func(files []string) {
		called.Store(true)
	})

	d.Trigger("brand.yaml")
	d.Stop()

	time.Sleep(100 * time.Millisecond)

	assert.False(t, called.Load())
}

func Test_Debouncer_StopPreventsNewTriggers(t *testing.T) {
	var called atomic.Bool

	d := NewDebouncer(50*time.Millisecond, func(files []string) {
		called.Store(true)
	})

	d.Stop()
	d.Trigger("brand.yaml")

	time.Sleep(100 * time.Millisecond)

	assert.False(t, called.Load())
}

func Test_Debouncer_StopWaitsForCallback(t *testing.T) {
	var finished atomic.Bool

	started := make(chan struct{})

	d := NewDebouncer(10*time.Millisecond, func(files []string) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
	})

	d.Trigger("brand.yaml")
	<-started
	d.Stop()

	assert.True(t, finished.Load())
}

func Test_Debouncer_CallbacksDoNotOverlap(t *testing.T) {
	var (
		active  atomic.Int32
		overlap atomic.Bool
		calls   atomic.Int32
	)

	d := NewDebouncer(5*time.Millisecond, func(files []string) {
		if active.Add(1) > 1 {
			overlap.Store(true)
		}

		time.Sleep(40 * time.Millisecond)
		active.Add(-1)
		calls.Add(1)
	})
	defer d.Stop()

	d.Trigger("a.yaml")
	time.Sleep(15 * time.Millisecond)
	d.Trigger("b.yaml")

	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 10*time.Millisecond)
	assert.False(t, overlap.Load())
}

func Test_Debouncer_UniqueFiles(t *testing.T) {
	received := make(chan []string, 1)

	d := NewDebouncer(50*time.Millisecond, func(files []string) {
		received <- files
	})
	defer d.Stop()

	d.Trigger("brand.yaml")
	d.Trigger("brand.yaml")
	d.Trigger("brand.yaml")

	select {
	case files := <-received:
		assert.Equal(t, []string{"brand.yaml"}, files)
	case <-time.After(time.Second):
		t.Fatal("callback not called")
	}
}
