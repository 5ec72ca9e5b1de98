package service

import (
	"context"
	"fmt"
	"sync"

	"notegram/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// UpdateSource delivers inbound bot updates over a long-poll channel.
type UpdateSource interface {
	Updates() tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// UpdatePoller consumes the transport update stream, normalizes each
// event, applies the authorization gate and hands accepted messages to
// the dispatch queue.
type UpdatePoller struct {
	source     UpdateSource
	authorizer *Authorizer
	queue      *DispatchQueue
	logger     *logrus.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

// NewUpdatePoller creates a poller wired to the gate and queue.
func NewUpdatePoller(source UpdateSource, authorizer *Authorizer, queue *DispatchQueue, logger *logrus.Logger) *UpdatePoller {
	return &UpdatePoller{
		source:     source,
		authorizer: authorizer,
		queue:      queue,
		logger:     logger,
	}
}

// Start begins consuming updates in the background.
func (up *UpdatePoller) Start(ctx context.Context) error {
	up.mu.Lock()
	defer up.mu.Unlock()

	if up.running {
		return fmt.Errorf("update poller is already running")
	}

	up.ctx, up.cancel = context.WithCancel(ctx)
	up.running = true

	up.wg.Add(1)
	go up.pollLoop()

	up.logger.Info("Update poller started")
	return nil
}

// Stop gracefully stops the poller and waits for the in-flight queue to
// drain.
func (up *UpdatePoller) Stop() {
	up.mu.Lock()
	defer up.mu.Unlock()

	if !up.running {
		return
	}

	up.logger.Info("Stopping update poller...")
	up.cancel()
	up.source.StopReceivingUpdates()
	up.wg.Wait()
	up.queue.Wait()
	up.running = false
	up.logger.Info("Update poller stopped")
}

// IsRunning returns whether the poller is currently active.
func (up *UpdatePoller) IsRunning() bool {
	up.mu.Lock()
	defer up.mu.Unlock()
	return up.running
}

func (up *UpdatePoller) pollLoop() {
	defer up.wg.Done()

	updates := up.source.Updates()
	for {
		select {
		case <-up.ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			up.handleUpdate(update)
		}
	}
}

// handleUpdate drops malformed and unauthorized events before they reach
// the queue; neither gets a reply.
func (up *UpdatePoller) handleUpdate(update tgbotapi.Update) {
	msg := telegram.FromMessage(update.Message)
	if msg == nil {
		up.logger.Debug("Dropping update without usable payload")
		return
	}

	if !up.authorizer.Authorize(msg.SenderID) {
		return
	}

	up.queue.Enqueue(up.ctx, msg)
}
