package telegram

import (
	"strconv"
	"time"

	"notegram/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// FromMessage normalizes a raw bot API message into an IncomingMessage.
// It returns nil for payload-less messages (no text, no caption, no
// media), which are dropped before the queue.
func FromMessage(msg *tgbotapi.Message) *models.IncomingMessage {
	if msg == nil || msg.Chat == nil {
		return nil
	}

	m := &models.IncomingMessage{
		ChatID:    msg.Chat.ID,
		Text:      msg.Text,
		Caption:   msg.Caption,
		Timestamp: arrivalTime(msg),
	}
	if msg.From != nil {
		m.SenderID = strconv.FormatInt(msg.From.ID, 10)
	}

	switch {
	case msg.ForwardFrom != nil:
		m.ForwardedFromUser = userDisplayName(msg.ForwardFrom)
	case msg.ForwardFromChat != nil:
		m.ForwardedFromChat = msg.ForwardFromChat.Title
	case msg.ForwardSenderName != "":
		m.ForwardSenderName = msg.ForwardSenderName
	}

	// Media items in declaration order: photo, document, video, audio,
	// voice, video note.
	if len(msg.Photo) > 0 {
		// Variants are ordered by resolution; take the highest.
		best := msg.Photo[len(msg.Photo)-1]
		m.Media = append(m.Media, models.MediaItem{Kind: models.MediaKindPhoto, FileID: best.FileID})
	}
	if msg.Document != nil {
		m.Media = append(m.Media, models.MediaItem{Kind: models.MediaKindDocument, FileID: msg.Document.FileID, FileName: msg.Document.FileName})
	}
	if msg.Video != nil {
		m.Media = append(m.Media, models.MediaItem{Kind: models.MediaKindVideo, FileID: msg.Video.FileID, FileName: msg.Video.FileName})
	}
	if msg.Audio != nil {
		m.Media = append(m.Media, models.MediaItem{Kind: models.MediaKindAudio, FileID: msg.Audio.FileID, FileName: msg.Audio.FileName})
	}
	if msg.Voice != nil {
		m.Media = append(m.Media, models.MediaItem{Kind: models.MediaKindVoice, FileID: msg.Voice.FileID})
	}
	if msg.VideoNote != nil {
		m.Media = append(m.Media, models.MediaItem{Kind: models.MediaKindVideoNote, FileID: msg.VideoNote.FileID})
	}

	if m.Text == "" && m.Caption == "" && len(m.Media) == 0 {
		return nil
	}

	return m
}

// arrivalTime uses the transport-supplied epoch seconds, falling back to
// local wall-clock time when absent.
func arrivalTime(msg *tgbotapi.Message) time.Time {
	if msg.Date > 0 {
		return time.Unix(int64(msg.Date), 0)
	}
	return time.Now()
}

// userDisplayName prefers the handle over the profile name.
func userDisplayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return "@" + u.UserName
	}
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}
