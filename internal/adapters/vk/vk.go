package vk

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/SevereCloud/vksdk/v2/api"
	"github.com/dkeysil/tg2vk/internal/domain"
	"go.uber.org/zap"
)

type Config struct {
	Token   string
	GroupID int64
	// FromGroup publishes posts on behalf of the group instead of the token owner.
	FromGroup bool
	Version   string
}

type VKAdapter struct {
	methods Methods
	client  *http.Client
	logger  *zap.Logger

	groupID   int64
	fromGroup bool
}

func NewVKAdapter(cfg Config, logger *zap.Logger) *VKAdapter {
	vk := api.NewVK(cfg.Token)
	if cfg.Version != "" {
		vk.Version = cfg.Version
	}

	return New(cfg, sdkMethods{vk: vk}, http.DefaultClient, logger)
}

func New(cfg Config, methods Methods, client *http.Client, logger *zap.Logger) *VKAdapter {
	return &VKAdapter{
		methods:   methods,
		client:    client,
		logger:    logger,
		groupID:   cfg.GroupID,
		fromGroup: cfg.FromGroup,
	}
}

func (a *VKAdapter) UploadPhoto(ctx context.Context, photo []byte) (domain.AttachmentRef, error) {
	return a.upload(ctx, a.photoTarget(), "photo.jpg", bytes.NewReader(photo))
}

func (a *VKAdapter) UploadDocument(ctx context.Context, filePath, title string) (domain.AttachmentRef, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	return a.upload(ctx, a.docTarget(title), filepath.Base(filePath), f)
}

func (a *VKAdapter) Publish(ctx context.Context, post domain.WallPost) error {
	params := api.Params{
		"owner_id": post.OwnerID,
		"message":  post.Message,
	}
	if attachments := post.AttachmentsParam(); attachments != "" {
		params["attachments"] = attachments
	}
	if a.fromGroup {
		params["from_group"] = 1
	}

	postID, err := a.methods.WallPost(params)
	if err != nil {
		return fmt.Errorf("wall.post: %w", err)
	}

	a.logger.Info(
		"wall post created",
		zap.Int64("owner_id", post.OwnerID),
		zap.Int("post_id", postID),
		zap.String("attachments", post.AttachmentsParam()),
	)
	return nil
}
