package service

import (
	"notegram/internal/metrics"

	"github.com/sirupsen/logrus"
)

// Authorizer gates inbound messages on a single allow-listed sender
// identity. Rejection is silent to the sender; only a diagnostic log and
// a counter record it.
type Authorizer struct {
	allowedSender string
	logger        *logrus.Logger
}

// NewAuthorizer creates an authorizer for the configured identity.
func NewAuthorizer(allowedSender string, logger *logrus.Logger) *Authorizer {
	return &Authorizer{
		allowedSender: allowedSender,
		logger:        logger,
	}
}

// Authorize returns true only when senderID string-equals the configured
// identity. An absent identity always fails.
func (a *Authorizer) Authorize(senderID string) bool {
	if senderID == "" {
		a.logger.Debug("Dropping message without sender identity")
		metrics.IncrementCounter("unauthorized_drops", "Messages dropped by the authorization gate")
		return false
	}

	if senderID != a.allowedSender {
		a.logger.WithField("sender_id", senderID).Debug("Dropping message from unauthorized sender")
		metrics.IncrementCounter("unauthorized_drops", "Messages dropped by the authorization gate")
		return false
	}

	return true
}
