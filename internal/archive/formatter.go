package archive

import (
	"fmt"
	"strings"
	"time"

	"notegram/internal/models"
)

// FormatTime renders a zero-padded HH:MM:SS timestamp in local time.
func FormatTime(t time.Time) string {
	return t.Local().Format("15:04:05")
}

// FormatRecord renders one note entry as a markdown fragment. It is a pure
// function of the message and its fetched attachments; items whose fetch
// failed are simply not in the list and leave no marker.
//
// Layout, in order: separator, bold timestamp with optional forward
// annotation, blank line, body (text else caption else nothing), optional
// attachments block, separator.
func FormatRecord(msg *models.IncomingMessage, attachments []models.AttachmentResult) string {
	var b strings.Builder

	b.WriteString("\n---\n")
	b.WriteString("**")
	b.WriteString(FormatTime(msg.Timestamp))
	b.WriteString("**")
	if origin := msg.ForwardOrigin(); origin != "" {
		b.WriteString(" - Forwarded from ")
		b.WriteString(origin)
	}
	b.WriteString("\n\n")

	if body := msg.Body(); body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	if len(attachments) > 0 {
		b.WriteString("**Attachments:**\n")
		for _, att := range attachments {
			b.WriteString(attachmentLine(att))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	b.WriteString("---\n")
	return b.String()
}

// attachmentLine renders a single attachment reference. Image kinds are
// embedded inline; everything else becomes a link annotated with its kind.
func attachmentLine(att models.AttachmentResult) string {
	target := "../attachments/" + att.StoredName
	if att.Kind.IsImage() {
		return fmt.Sprintf("![%s](%s)", att.DisplayName(), target)
	}
	return fmt.Sprintf("- [%s](%s) _(%s)_", att.DisplayName(), target, att.Kind.Label())
}
