package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"notegram/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProcessor struct {
	mu        sync.Mutex
	processed []string
	inFlight  int32
	maxFlight int32
	delay     time.Duration
	panicOn   string
}

func (p *recordingProcessor) Process(ctx context.Context, msg *models.IncomingMessage) {
	current := atomic.AddInt32(&p.inFlight, 1)
	defer atomic.AddInt32(&p.inFlight, -1)

	for {
		max := atomic.LoadInt32(&p.maxFlight)
		if current <= max || atomic.CompareAndSwapInt32(&p.maxFlight, max, current) {
			break
		}
	}

	if p.delay > 0 {
		time.Sleep(p.delay)
	}

	if p.panicOn != "" && msg.Text == p.panicOn {
		panic("boom")
	}

	p.mu.Lock()
	p.processed = append(p.processed, msg.Text)
	p.mu.Unlock()
}

func TestQueueProcessesInArrivalOrder(t *testing.T) {
	proc := &recordingProcessor{delay: 5 * time.Millisecond}
	q := NewDispatchQueue(proc, logrus.New())

	var want []string
	for i := 0; i < 20; i++ {
		text := fmt.Sprintf("msg-%02d", i)
		want = append(want, text)
		q.Enqueue(context.Background(), &models.IncomingMessage{Text: text, Timestamp: time.Now()})
	}

	q.Wait()

	assert.Equal(t, want, proc.processed)
	assert.Zero(t, q.Depth())
}

func TestQueueNeverOverlapsProcessing(t *testing.T) {
	proc := &recordingProcessor{delay: 2 * time.Millisecond}
	q := NewDispatchQueue(proc, logrus.New())

	// Enqueue from many goroutines to provoke overlap if the guarantee is broken.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q.Enqueue(context.Background(), &models.IncomingMessage{Text: fmt.Sprintf("m%d", i), Timestamp: time.Now()})
		}(i)
	}
	wg.Wait()
	q.Wait()

	assert.Len(t, proc.processed, 50)
	assert.Equal(t, int32(1), atomic.LoadInt32(&proc.maxFlight), "more than one message was in flight")
}

func TestQueueContainsPanicsAndContinues(t *testing.T) {
	proc := &recordingProcessor{panicOn: "bad"}
	q := NewDispatchQueue(proc, logrus.New())

	q.Enqueue(context.Background(), &models.IncomingMessage{Text: "first"})
	q.Enqueue(context.Background(), &models.IncomingMessage{Text: "bad"})
	q.Enqueue(context.Background(), &models.IncomingMessage{Text: "last"})
	q.Wait()

	assert.Equal(t, []string{"first", "last"}, proc.processed)
}

func TestQueueRestartsAfterDraining(t *testing.T) {
	proc := &recordingProcessor{}
	q := NewDispatchQueue(proc, logrus.New())

	q.Enqueue(context.Background(), &models.IncomingMessage{Text: "one"})
	q.Wait()
	require.Equal(t, []string{"one"}, proc.processed)

	// A fresh enqueue after the drain loop exited must start a new one.
	q.Enqueue(context.Background(), &models.IncomingMessage{Text: "two"})
	q.Wait()
	assert.Equal(t, []string{"one", "two"}, proc.processed)
}
