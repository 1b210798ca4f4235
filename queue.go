package kontenbot

import (
	"context"
	"sync"
)

// DispatchQueue serializes update processing. One worker is enough for a
// single operator; the buffer absorbs bursts while a store call is pending.
type DispatchQueue struct {
	queue          chan *Update
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	workers        int
	processHandler func(*Update)
}

func NewDispatchQueue(workers int, size int) *DispatchQueue {
	ctx, cancel := context.WithCancel(context.Background())
	return &DispatchQueue{
		queue:   make(chan *Update, size),
		ctx:     ctx,
		cancel:  cancel,
		workers: workers,
	}
}

func (dq *DispatchQueue) Start() {
	for i := 0; i < dq.workers; i++ {
		dq.wg.Add(1)
		go func() {
			defer dq.wg.Done()
			for {
				select {
				case <-dq.ctx.Done():
					return
				case update, ok := <-dq.queue:
					if !ok {
						return
					}
					if dq.processHandler != nil {
						dq.processHandler(update)
					}
				}
			}
		}()
	}
}

// Stop cancels the workers and waits for them to drain. The channel is left
// open: closing it would race a concurrent Enqueue into a send-on-closed
// panic, and the workers exit on ctx.Done anyway.
func (dq *DispatchQueue) Stop() {
	dq.cancel()
	dq.wg.Wait()
}

func (dq *DispatchQueue) Enqueue(update *Update) {
	select {
	case <-dq.ctx.Done():
		return
	case dq.queue <- update:
	}
}

func (dq *DispatchQueue) SetProcessHandler(handler func(*Update)) {
	dq.processHandler = handler
}
