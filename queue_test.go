package kontenbot

import (
	"sync"
	"testing"
)

func TestDispatchQueueProcessesInOrder(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var got []string
	done := make(chan struct{})

	dq := NewDispatchQueue(1, 10)
	dq.SetProcessHandler(func(u *Update) {
		mu.Lock()
		got = append(got, u.Message.Text)
		if len(got) == 3 {
			close(done)
		}
		mu.Unlock()
	})
	dq.Start()

	for _, text := range []string{"a", "b", "c"} {
		dq.Enqueue(&Update{Message: &Message{Text: text}})
	}

	<-done
	dq.Stop()

	if got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected in-order processing, got %v", got)
	}
}

func TestDispatchQueueEnqueueAfterStop(t *testing.T) {
	t.Parallel()

	dq := NewDispatchQueue(1, 1)
	dq.SetProcessHandler(func(*Update) {})
	dq.Start()
	dq.Stop()

	// Must neither panic nor block, even once the buffer is full.
	dq.Enqueue(&Update{})
	dq.Enqueue(&Update{})
}

func TestDispatchQueueStopDuringEnqueue(t *testing.T) {
	t.Parallel()

	dq := NewDispatchQueue(1, 4)
	dq.SetProcessHandler(func(*Update) {})
	dq.Start()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				dq.Enqueue(&Update{})
			}
		}()
	}
	dq.Stop()
	wg.Wait()
}
