package service

import (
	"context"
	"time"

	"notegram/internal/archive"
	apperrors "notegram/internal/errors"
	"notegram/internal/metrics"
	"notegram/internal/models"
	"notegram/internal/tracing"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// AttachmentFetcher downloads one media item to local storage.
type AttachmentFetcher interface {
	Fetch(ctx context.Context, item models.MediaItem, arrival time.Time) (*models.AttachmentResult, error)
}

// ArchiveWriter appends a formatted fragment to the day file.
type ArchiveWriter interface {
	Append(fragment string) error
}

// Acknowledger sends the fire-and-forget reply after processing.
type Acknowledger interface {
	SendAcknowledgment(ctx context.Context, chatID int64, text string)
}

// Processor runs the per-message pipeline: fetch attachments in
// declaration order, render the markdown record, append it to the
// archive, acknowledge the sender.
type Processor struct {
	fetcher AttachmentFetcher
	writer  ArchiveWriter
	ack     Acknowledger
	ackText string
	logger  *apperrors.Logger
	tracer  oteltrace.Tracer
}

// NewProcessor wires the pipeline stages together.
func NewProcessor(fetcher AttachmentFetcher, writer ArchiveWriter, ack Acknowledger, ackText string, logger *logrus.Logger) *Processor {
	return &Processor{
		fetcher: fetcher,
		writer:  writer,
		ack:     ack,
		ackText: ackText,
		logger:  apperrors.WrapLogger(logger),
		tracer:  tracing.Tracer("notegram/service"),
	}
}

// Process handles one message to completion. Attachment failures are
// contained per item: the item is omitted and the record still lands. An
// archive write failure is logged and counted but the sender is
// acknowledged regardless; persistence problems never surface to the
// sender.
func (p *Processor) Process(ctx context.Context, msg *models.IncomingMessage) {
	start := time.Now()
	ctx, span := p.tracer.Start(ctx, "message.process",
		oteltrace.WithAttributes(
			attribute.Int("media_count", len(msg.Media)),
			attribute.Bool("forwarded", msg.ForwardOrigin() != ""),
		),
	)
	defer span.End()

	results := make([]models.AttachmentResult, 0, len(msg.Media))
	for _, item := range msg.Media {
		res, err := p.fetcher.Fetch(ctx, item, msg.Timestamp)
		if err != nil {
			metrics.IncrementCounter("attachment_fetch_failures", "Attachment fetches that failed and were omitted")
			p.logger.LogWarn(err, "Attachment fetch failed, omitting from record", logrus.Fields{
				"kind": string(item.Kind),
			})
			continue
		}
		results = append(results, *res)
	}

	fragment := archive.FormatRecord(msg, results)
	if err := p.writer.Append(fragment); err != nil {
		metrics.IncrementCounter("archive_write_failures", "Note appends that failed")
		p.logger.LogError(err, "Failed to persist note record")
	}

	p.ack.SendAcknowledgment(ctx, msg.ChatID, p.ackText)

	metrics.IncrementCounter("messages_processed", "Messages run through the pipeline")
	metrics.RecordTimer("message_processing", time.Since(start))
}
