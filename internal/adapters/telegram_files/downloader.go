package telegramfiles

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// FileLinker resolves a Telegram file id into a download URL, *tgbotapi.BotAPI implements it.
type FileLinker interface {
	GetFileDirectURL(fileID string) (string, error)
}

type Downloader struct {
	linker FileLinker
	client *http.Client
}

func NewDownloader(linker FileLinker, client *http.Client) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}

	return &Downloader{
		linker: linker,
		client: client,
	}
}

// Bytes reads the whole file into memory.
func (d *Downloader) Bytes(ctx context.Context, fileID string) ([]byte, error) {
	body, err := d.open(ctx, fileID)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", fileID, err)
	}
	return data, nil
}

// ToFile streams the file to path, creating or truncating it.
func (d *Downloader) ToFile(ctx context.Context, fileID, path string) error {
	body, err := d.open(ctx, fileID)
	if err != nil {
		return err
	}
	defer body.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return fmt.Errorf("could not write file %s: %w", fileID, err)
	}

	return f.Close()
}

func (d *Downloader) open(ctx context.Context, fileID string) (io.ReadCloser, error) {
	downloadURL, err := d.linker.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("could not get file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not download file %s: %w", fileID, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("could not download file %s: unexpected status %s", fileID, resp.Status)
	}

	return resp.Body, nil
}
