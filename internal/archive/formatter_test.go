package archive

import (
	"fmt"
	"testing"
	"time"

	"notegram/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatRecordTextOnly(t *testing.T) {
	ts := time.Date(2025, time.September, 2, 9, 5, 7, 0, time.Local)
	msg := &models.IncomingMessage{
		Text:      "remember the milk",
		Timestamp: ts,
	}

	got := FormatRecord(msg, nil)

	want := "\n---\n**09:05:07**\n\nremember the milk\n\n---\n"
	assert.Equal(t, want, got)
}

func TestFormatRecordForwardedPrecedence(t *testing.T) {
	ts := time.Date(2025, time.September, 2, 23, 59, 59, 0, time.Local)

	tests := []struct {
		name string
		msg  models.IncomingMessage
		want string
	}{
		{
			name: "named user wins over chat and sender name",
			msg: models.IncomingMessage{
				ForwardedFromUser: "@alice",
				ForwardedFromChat: "Some Channel",
				ForwardSenderName: "Hidden Sender",
			},
			want: "@alice",
		},
		{
			name: "chat title wins over sender name",
			msg: models.IncomingMessage{
				ForwardedFromChat: "Some Channel",
				ForwardSenderName: "Hidden Sender",
			},
			want: "Some Channel",
		},
		{
			name: "free-text sender name as last resort",
			msg: models.IncomingMessage{
				ForwardSenderName: "Hidden Sender",
			},
			want: "Hidden Sender",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.msg
			msg.Text = "hi"
			msg.Timestamp = ts

			got := FormatRecord(&msg, nil)

			want := fmt.Sprintf("\n---\n**23:59:59** - Forwarded from %s\n\nhi\n\n---\n", tt.want)
			assert.Equal(t, want, got)
		})
	}
}

func TestFormatRecordWithAttachments(t *testing.T) {
	ts := time.Date(2025, time.September, 2, 12, 0, 0, 0, time.Local)
	msg := &models.IncomingMessage{
		Caption:   "holiday plans",
		Timestamp: ts,
	}
	attachments := []models.AttachmentResult{
		{StoredName: "1756800000000_a1b2c3_photo.jpg", Kind: models.MediaKindPhoto},
		{StoredName: "1756800000000_d4e5f6_plan_v2.docx", Kind: models.MediaKindDocument, OriginalName: "plan v2.docx"},
	}

	got := FormatRecord(msg, attachments)

	want := "\n---\n**12:00:00**\n\n" +
		"holiday plans\n\n" +
		"**Attachments:**\n" +
		"![1756800000000_a1b2c3_photo.jpg](../attachments/1756800000000_a1b2c3_photo.jpg)\n" +
		"- [plan v2.docx](../attachments/1756800000000_d4e5f6_plan_v2.docx) _(Document)_\n" +
		"\n---\n"
	assert.Equal(t, want, got)
}

func TestFormatRecordCaptionUsedOnlyWithoutText(t *testing.T) {
	ts := time.Date(2025, time.September, 2, 8, 0, 0, 0, time.Local)
	msg := &models.IncomingMessage{
		Text:      "text wins",
		Caption:   "caption loses",
		Timestamp: ts,
	}

	got := FormatRecord(msg, nil)

	assert.Contains(t, got, "text wins")
	assert.NotContains(t, got, "caption loses")
}

func TestFormatRecordNoBodyNoAttachments(t *testing.T) {
	ts := time.Date(2025, time.September, 2, 8, 0, 0, 0, time.Local)
	msg := &models.IncomingMessage{Timestamp: ts}

	got := FormatRecord(msg, nil)

	assert.Equal(t, "\n---\n**08:00:00**\n\n---\n", got)
}

func TestFormatRecordImageKinds(t *testing.T) {
	tests := []struct {
		kind   models.MediaKind
		inline bool
	}{
		{models.MediaKindPhoto, true},
		{models.MediaKindVideo, true},
		{models.MediaKindVideoNote, true},
		{models.MediaKindDocument, false},
		{models.MediaKindAudio, false},
		{models.MediaKindVoice, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			msg := &models.IncomingMessage{
				Text:      "x",
				Timestamp: time.Date(2025, time.September, 2, 8, 0, 0, 0, time.Local),
			}
			got := FormatRecord(msg, []models.AttachmentResult{{StoredName: "f.bin", Kind: tt.kind}})

			if tt.inline {
				assert.Contains(t, got, "![f.bin](../attachments/f.bin)")
			} else {
				assert.Contains(t, got, fmt.Sprintf("- [f.bin](../attachments/f.bin) _(%s)_", tt.kind.Label()))
			}
		})
	}
}

func TestFormatTimeZeroPadded(t *testing.T) {
	ts := time.Date(2025, time.January, 5, 1, 2, 3, 0, time.Local)
	assert.Equal(t, "01:02:03", FormatTime(ts))
}
