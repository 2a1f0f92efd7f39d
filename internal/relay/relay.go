package relay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dkeysil/tg2vk/internal/domain"
	"go.uber.org/zap"
)

const (
	SuccessText = "✅ Posted to VK!"
	FailureText = "❌ Failed to publish."
)

type Downloader interface {
	Bytes(ctx context.Context, fileID string) ([]byte, error)
	ToFile(ctx context.Context, fileID, path string) error
}

type Uploader interface {
	UploadPhoto(ctx context.Context, photo []byte) (domain.AttachmentRef, error)
	UploadDocument(ctx context.Context, filePath, title string) (domain.AttachmentRef, error)
}

type Publisher interface {
	Publish(ctx context.Context, post domain.WallPost) error
}

type Notifier interface {
	Notify(ctx context.Context, chatID int64, replyTo int, text string) error
}

type Metrics interface {
	Observe(kind domain.Kind, result string, elapsed time.Duration)
}

type Config struct {
	GroupID int64
	// AuthorizedID restricts the relay to a single sender, zero accepts everyone.
	AuthorizedID int64
	// TempDir is the parent of per-message directories, empty means os.TempDir.
	TempDir string
}

type Relay struct {
	cfg Config

	downloader Downloader
	uploader   Uploader
	publisher  Publisher
	notifier   Notifier
	metrics    Metrics
	logger     *zap.Logger
}

func New(
	cfg Config,
	downloader Downloader,
	uploader Uploader,
	publisher Publisher,
	notifier Notifier,
	metrics Metrics,
	logger *zap.Logger,
) *Relay {
	return &Relay{
		cfg:        cfg,
		downloader: downloader,
		uploader:   uploader,
		publisher:  publisher,
		notifier:   notifier,
		metrics:    metrics,
		logger:     logger,
	}
}

// Authorized reports whether the sender may trigger the relay.
func (r *Relay) Authorized(senderID int64) bool {
	return r.cfg.AuthorizedID == 0 || senderID == r.cfg.AuthorizedID
}

// Handle relays one message to the group wall and acknowledges the outcome to the sender.
// Messages from unauthorized senders are dropped without a reply.
func (r *Relay) Handle(ctx context.Context, msg domain.Message) {
	if !r.Authorized(msg.SenderID) {
		return
	}

	start := time.Now()
	selection := domain.Classify(msg)
	logger := r.logger.With(
		zap.Int("message_id", msg.ID),
		zap.Int64("sender_id", msg.SenderID),
		zap.String("kind", string(selection.Kind)),
	)

	result, text := ResultSuccess, SuccessText
	if err := r.relay(ctx, msg, selection); err != nil {
		result, text = ResultFailure, FailureText
		logger.Error("failed to relay message", zap.Error(err))
	} else {
		logger.Info("post published")
	}

	if r.metrics != nil {
		r.metrics.Observe(selection.Kind, result, time.Since(start))
	}

	if err := r.notifier.Notify(ctx, msg.ChatID, msg.ID, text); err != nil {
		logger.Error("failed to send acknowledgment", zap.Error(err))
	}
}

func (r *Relay) relay(ctx context.Context, msg domain.Message, selection domain.Selection) error {
	dir, err := os.MkdirTemp(r.cfg.TempDir, "tg2vk-")
	if err != nil {
		return &StageError{Stage: StageDownload, Err: fmt.Errorf("create temp dir: %w", err)}
	}
	defer os.RemoveAll(dir)

	var attachments []domain.AttachmentRef

	switch {
	case selection.Kind == domain.KindPhoto:
		photo, err := r.downloader.Bytes(ctx, selection.FileID)
		if err != nil {
			return &StageError{Stage: StageDownload, Err: err}
		}

		ref, err := r.uploader.UploadPhoto(ctx, photo)
		if err != nil {
			return &StageError{Stage: StageUpload, Err: err}
		}
		attachments = append(attachments, ref)

	case selection.IsDocument():
		path := filepath.Join(dir, selection.FileName)
		if err := r.downloader.ToFile(ctx, selection.FileID, path); err != nil {
			return &StageError{Stage: StageDownload, Err: err}
		}

		ref, err := r.uploader.UploadDocument(ctx, path, selection.Title)
		if err != nil {
			return &StageError{Stage: StageUpload, Err: err}
		}
		attachments = append(attachments, ref)
	}

	post := domain.NewWallPost(r.cfg.GroupID, msg.Body(), attachments...)
	if err := r.publisher.Publish(ctx, post); err != nil {
		return &StageError{Stage: StagePublish, Err: err}
	}

	return nil
}
