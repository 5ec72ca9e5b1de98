package media

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"notegram/internal/constants"
	"notegram/internal/models"
	"notegram/internal/security"

	"github.com/google/uuid"
)

// StoredFileName generates a collision-free filename for a fetched
// attachment: {arrival-millis}_{token}_{sanitized-base}{ext}. The random
// token keeps names unique even under rapid arrivals within the same
// millisecond.
func StoredFileName(item models.MediaItem, arrival time.Time) string {
	base := item.FileName
	ext := ""
	if base != "" {
		ext = filepath.Ext(base)
		base = strings.TrimSuffix(base, ext)
	}
	if ext == "" {
		ext = defaultExtension(item.Kind)
	}
	if base == "" {
		base = string(item.Kind)
	}
	base = security.SanitizeBaseName(base)

	return fmt.Sprintf("%d_%s_%s%s", arrival.UnixMilli(), shortToken(), base, ext)
}

// defaultExtension maps a media kind to its extension when the sender
// declared no filename.
func defaultExtension(kind models.MediaKind) string {
	switch kind {
	case models.MediaKindPhoto:
		return ".jpg"
	case models.MediaKindVideo, models.MediaKindVideoNote:
		return ".mp4"
	case models.MediaKindVoice:
		return ".ogg"
	case models.MediaKindAudio:
		return ".mp3"
	}
	return ".bin"
}

func shortToken() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:constants.AttachmentTokenLength]
}
