package telegram

import (
	"context"

	apperrors "notegram/internal/errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Client wraps the Telegram Bot API: the long-poll update stream, media
// reference resolution and fire-and-forget acknowledgment replies.
type Client struct {
	bot            *tgbotapi.BotAPI
	logger         *logrus.Logger
	pollTimeoutSec int
}

// NewClient authenticates the bot against the Telegram API.
func NewClient(token string, pollTimeoutSec int, logger *logrus.Logger) (*Client, error) {
	// Initialization failures are almost always the network not being up
	// yet; callers retry them.
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, apperrors.WrapRetryable(err, apperrors.ErrCodeTelegramAPI, "failed to initialize bot")
	}

	return &Client{
		bot:            bot,
		logger:         logger,
		pollTimeoutSec: pollTimeoutSec,
	}, nil
}

// Username returns the authenticated bot account name.
func (c *Client) Username() string {
	return c.bot.Self.UserName
}

// Updates returns the long-poll update channel.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = c.pollTimeoutSec
	u.AllowedUpdates = []string{"message"}
	return c.bot.GetUpdatesChan(u)
}

// StopReceivingUpdates closes the update channel.
func (c *Client) StopReceivingUpdates() {
	c.bot.StopReceivingUpdates()
}

// ResolveDownloadURL resolves a media reference to a time-limited
// download address.
func (c *Client) ResolveDownloadURL(ctx context.Context, fileID string) (string, error) {
	url, err := c.bot.GetFileDirectURL(fileID)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeTelegramAPI, "failed to resolve file download URL")
	}
	return url, nil
}

// SendAcknowledgment sends a reply to the chat. Failures are logged and
// never propagated; the pipeline does not depend on the ack landing.
func (c *Client) SendAcknowledgment(ctx context.Context, chatID int64, text string) {
	if _, err := c.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		c.logger.WithError(err).WithField("chat_id", chatID).Warn("Failed to send acknowledgment")
	}
}
