package models

import (
	"time"
)

// MediaKind tags the variant of a media payload attached to a message.
type MediaKind string

const (
	MediaKindPhoto     MediaKind = "photo"
	MediaKindDocument  MediaKind = "document"
	MediaKindVideo     MediaKind = "video"
	MediaKindAudio     MediaKind = "audio"
	MediaKindVoice     MediaKind = "voice"
	MediaKindVideoNote MediaKind = "video_note"
)

// Label returns the human-readable name of the media kind, used in
// rendered note records.
func (k MediaKind) Label() string {
	switch k {
	case MediaKindPhoto:
		return "Photo"
	case MediaKindDocument:
		return "Document"
	case MediaKindVideo:
		return "Video"
	case MediaKindAudio:
		return "Audio"
	case MediaKindVoice:
		return "Voice"
	case MediaKindVideoNote:
		return "Video Note"
	}
	return "File"
}

// IsImage reports whether the kind is rendered as an inline image embed
// rather than a plain link.
func (k MediaKind) IsImage() bool {
	return k == MediaKindPhoto || k == MediaKindVideo || k == MediaKindVideoNote
}

// MediaItem is one media payload carried by an incoming message. FileID is
// the transport-issued reference that must be resolved to a download URL
// before bytes can be fetched. FileName is the sender-declared name, empty
// when the transport did not provide one.
type MediaItem struct {
	Kind     MediaKind
	FileID   string
	FileName string
}

// IncomingMessage is the normalized inbound event handed to the dispatch
// queue. It exists only for the duration of one processing step.
//
// At most one of the forward fields is populated; display precedence is
// named user > chat title > free-text sender name.
type IncomingMessage struct {
	SenderID          string
	ChatID            int64
	Text              string
	Caption           string
	Media             []MediaItem
	ForwardedFromUser string
	ForwardedFromChat string
	ForwardSenderName string
	Timestamp         time.Time
}

// Body returns the note body: message text when present, else the media
// caption, else the empty string.
func (m *IncomingMessage) Body() string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

// ForwardOrigin resolves the provenance annotation text, or "" when the
// message was not forwarded.
func (m *IncomingMessage) ForwardOrigin() string {
	switch {
	case m.ForwardedFromUser != "":
		return m.ForwardedFromUser
	case m.ForwardedFromChat != "":
		return m.ForwardedFromChat
	case m.ForwardSenderName != "":
		return m.ForwardSenderName
	}
	return ""
}

// AttachmentResult describes one successfully stored attachment. A failed
// fetch produces no result and the item is omitted from the record.
type AttachmentResult struct {
	StoredName   string
	Kind         MediaKind
	OriginalName string
}

// DisplayName is the text shown for the attachment in the rendered record:
// the sender-declared filename when known, else the generated stored name.
func (r AttachmentResult) DisplayName() string {
	if r.OriginalName != "" {
		return r.OriginalName
	}
	return r.StoredName
}
