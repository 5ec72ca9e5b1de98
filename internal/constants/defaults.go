package constants

// Default transport configuration values
const (
	DefaultPollTimeoutSec = 30
	DefaultRetryBackoffMs = 1000
	DefaultMaxBackoffMs   = 60000
	DefaultMaxAttempts    = 5
	DefaultServerPort     = 8082
)

// Default media configuration values
const (
	DefaultFetchTimeoutSec = 30
	AttachmentTokenLength  = 6
)

// Default timeout values
const (
	DefaultGracefulShutdownSec   = 30
	DefaultServerReadTimeoutSec  = 15
	DefaultServerWriteTimeoutSec = 15
	DefaultServerIdleTimeoutSec  = 60
	ServerErrorChannelSize       = 1
)

// Archive layout
const (
	AttachmentsDirName = "attachments"
	NotesDirName       = "notes"
)
