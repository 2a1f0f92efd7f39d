package vk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/SevereCloud/vksdk/v2/api"
	"github.com/dkeysil/tg2vk/internal/domain"
)

// uploadResponse is what a VK upload server answers after a multipart POST.
type uploadResponse struct {
	Server json.Number     `json:"server"`
	Photo  string          `json:"photo"`
	Hash   string          `json:"hash"`
	File   string          `json:"file"`
	Error  json.RawMessage `json:"error"`
	Descr  string          `json:"error_descr"`
}

// uploadTarget describes one flavour of the slot, transfer, register protocol.
type uploadTarget struct {
	name     string
	field    string
	server   func(groupID int64) (string, error)
	register func(resp *uploadResponse) (domain.AttachmentRef, error)
}

func (a *VKAdapter) photoTarget() uploadTarget {
	return uploadTarget{
		name:   "photo",
		field:  "photo",
		server: a.methods.PhotoUploadServer,
		register: func(resp *uploadResponse) (domain.AttachmentRef, error) {
			if resp.Photo == "" || resp.Photo == "[]" {
				return "", errors.New("upload server returned no photo")
			}

			ownerID, id, err := a.methods.SaveWallPhoto(api.Params{
				"group_id": a.groupID,
				"server":   resp.Server.String(),
				"photo":    resp.Photo,
				"hash":     resp.Hash,
			})
			if err != nil {
				return "", fmt.Errorf("photos.saveWallPhoto: %w", err)
			}
			return domain.PhotoRef(ownerID, id), nil
		},
	}
}

func (a *VKAdapter) docTarget(title string) uploadTarget {
	return uploadTarget{
		name:   "document",
		field:  "file",
		server: a.methods.DocUploadServer,
		register: func(resp *uploadResponse) (domain.AttachmentRef, error) {
			if resp.File == "" {
				return "", errors.New("upload server returned no file")
			}

			ownerID, id, err := a.methods.SaveDoc(api.Params{
				"file":     resp.File,
				"title":    title,
				"group_id": a.groupID,
			})
			if err != nil {
				return "", fmt.Errorf("docs.save: %w", err)
			}
			return domain.DocRef(ownerID, id), nil
		},
	}
}

func (a *VKAdapter) upload(ctx context.Context, t uploadTarget, fileName string, body io.Reader) (domain.AttachmentRef, error) {
	uploadURL, err := t.server(a.groupID)
	if err != nil {
		return "", fmt.Errorf("get %s upload server: %w", t.name, err)
	}

	resp, err := a.transfer(ctx, uploadURL, t.field, fileName, body)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", t.name, err)
	}

	return t.register(resp)
}

// transfer streams body to the upload server as a single multipart field.
func (a *VKAdapter) transfer(ctx context.Context, url, field, fileName string, body io.Reader) (*uploadResponse, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile(field, fileName)
		if err == nil {
			_, err = io.Copy(part, body)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		pr.CloseWithError(err)
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}

	var resp uploadResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	if len(resp.Error) > 0 && string(resp.Error) != "null" {
		return nil, fmt.Errorf("upload server error: %s %s", resp.Error, resp.Descr)
	}

	return &resp, nil
}
