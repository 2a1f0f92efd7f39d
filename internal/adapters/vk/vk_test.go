package vk

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/SevereCloud/vksdk/v2/api"
	"github.com/dkeysil/tg2vk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const groupID = 100

type fakeMethods struct {
	uploadURL string
	serverErr error
	saveErr   error
	postErr   error

	serverCalls []string
	saved       []api.Params
	posts       []api.Params
}

func (m *fakeMethods) PhotoUploadServer(groupID int64) (string, error) {
	m.serverCalls = append(m.serverCalls, "photo")
	return m.uploadURL + "/photo", m.serverErr
}

func (m *fakeMethods) SaveWallPhoto(params api.Params) (int, int, error) {
	m.saved = append(m.saved, params)
	return -groupID, 555, m.saveErr
}

func (m *fakeMethods) DocUploadServer(groupID int64) (string, error) {
	m.serverCalls = append(m.serverCalls, "doc")
	return m.uploadURL + "/doc", m.serverErr
}

func (m *fakeMethods) SaveDoc(params api.Params) (int, int, error) {
	m.saved = append(m.saved, params)
	return -groupID, 7, m.saveErr
}

func (m *fakeMethods) WallPost(params api.Params) (int, error) {
	m.posts = append(m.posts, params)
	return 1, m.postErr
}

type received struct {
	path     string
	field    string
	fileName string
	content  string
}

// newUploadServer answers every upload with body and records the single multipart file it got.
func newUploadServer(t *testing.T, body string) (*httptest.Server, *[]received) {
	var got []received
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reader, err := r.MultipartReader()
		if !assert.NoError(t, err) {
			return
		}

		part, err := reader.NextPart()
		if !assert.NoError(t, err) {
			return
		}
		content, err := io.ReadAll(part)
		assert.NoError(t, err)

		got = append(got, received{
			path:     r.URL.Path,
			field:    part.FormName(),
			fileName: part.FileName(),
			content:  string(content),
		})

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func newAdapter(methods *fakeMethods, fromGroup bool) *VKAdapter {
	return New(Config{GroupID: groupID, FromGroup: fromGroup}, methods, http.DefaultClient, zap.NewNop())
}

func TestUploadPhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads and saves wall photo", func(t *testing.T) {
		srv, got := newUploadServer(t, `{"server":123456,"photo":"[{\"photo\":\"abc\"}]","hash":"deadbeef"}`)
		methods := &fakeMethods{uploadURL: srv.URL}

		ref, err := newAdapter(methods, false).UploadPhoto(ctx, []byte("jpeg-bytes"))
		require.NoError(t, err)
		assert.Equal(t, domain.AttachmentRef("photo-100_555"), ref)

		assert.Equal(t, []string{"photo"}, methods.serverCalls)
		require.Len(t, *got, 1)
		assert.Equal(t, received{path: "/photo", field: "photo", fileName: "photo.jpg", content: "jpeg-bytes"}, (*got)[0])

		require.Len(t, methods.saved, 1)
		assert.Equal(t, api.Params{
			"group_id": int64(groupID),
			"server":   "123456",
			"photo":    `[{"photo":"abc"}]`,
			"hash":     "deadbeef",
		}, methods.saved[0])
	})

	t.Run("empty photo list is an error", func(t *testing.T) {
		srv, _ := newUploadServer(t, `{"server":1,"photo":"[]","hash":""}`)
		methods := &fakeMethods{uploadURL: srv.URL}

		_, err := newAdapter(methods, false).UploadPhoto(ctx, []byte("x"))
		assert.Error(t, err)
		assert.Empty(t, methods.saved)
	})

	t.Run("upload slot failure", func(t *testing.T) {
		methods := &fakeMethods{serverErr: errors.New("access denied")}

		_, err := newAdapter(methods, false).UploadPhoto(ctx, []byte("x"))
		assert.ErrorContains(t, err, "get photo upload server")
		assert.Empty(t, methods.saved)
	})

	t.Run("registration failure", func(t *testing.T) {
		srv, _ := newUploadServer(t, `{"server":1,"photo":"[1]","hash":"h"}`)
		methods := &fakeMethods{uploadURL: srv.URL, saveErr: errors.New("invalid hash")}

		_, err := newAdapter(methods, false).UploadPhoto(ctx, []byte("x"))
		assert.ErrorContains(t, err, "photos.saveWallPhoto")
	})
}

func TestUploadDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads and saves document", func(t *testing.T) {
		srv, got := newUploadServer(t, `{"file":"token-123"}`)
		methods := &fakeMethods{uploadURL: srv.URL}

		path := filepath.Join(t.TempDir(), "clip.mp4")
		require.NoError(t, os.WriteFile(path, []byte("video-bytes"), 0o600))

		ref, err := newAdapter(methods, false).UploadDocument(ctx, path, "Video")
		require.NoError(t, err)
		assert.Equal(t, domain.AttachmentRef("doc-100_7"), ref)

		assert.Equal(t, []string{"doc"}, methods.serverCalls)
		require.Len(t, *got, 1)
		assert.Equal(t, received{path: "/doc", field: "file", fileName: "clip.mp4", content: "video-bytes"}, (*got)[0])

		require.Len(t, methods.saved, 1)
		assert.Equal(t, api.Params{"file": "token-123", "title": "Video", "group_id": int64(groupID)}, methods.saved[0])
	})

	t.Run("upload server error body", func(t *testing.T) {
		srv, _ := newUploadServer(t, `{"error":"ERR_UPLOAD_FILE_NOT_UPLOADED","error_descr":"file is empty"}`)
		methods := &fakeMethods{uploadURL: srv.URL}

		path := filepath.Join(t.TempDir(), "empty.txt")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		_, err := newAdapter(methods, false).UploadDocument(ctx, path, "empty.txt")
		assert.ErrorContains(t, err, "ERR_UPLOAD_FILE_NOT_UPLOADED")
		assert.Empty(t, methods.saved)
	})

	t.Run("missing file", func(t *testing.T) {
		methods := &fakeMethods{}

		_, err := newAdapter(methods, false).UploadDocument(ctx, filepath.Join(t.TempDir(), "nope"), "nope")
		assert.Error(t, err)
		assert.Empty(t, methods.serverCalls)
	})
}

func TestTransferStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	methods := &fakeMethods{uploadURL: srv.URL}
	_, err := newAdapter(methods, false).UploadPhoto(context.Background(), []byte("x"))
	assert.ErrorContains(t, err, "502")
	assert.Empty(t, methods.saved)
}

func TestPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("text only omits attachments", func(t *testing.T) {
		methods := &fakeMethods{}
		err := newAdapter(methods, false).Publish(ctx, domain.NewWallPost(groupID, "Hello"))
		require.NoError(t, err)

		assert.Equal(t, []api.Params{{"owner_id": int64(-groupID), "message": "Hello"}}, methods.posts)
	})

	t.Run("attachments and from_group", func(t *testing.T) {
		methods := &fakeMethods{}
		err := newAdapter(methods, true).Publish(ctx, domain.NewWallPost(groupID, "", domain.PhotoRef(-groupID, 555)))
		require.NoError(t, err)

		assert.Equal(t, []api.Params{{
			"owner_id":    int64(-groupID),
			"message":     "",
			"attachments": "photo-100_555",
			"from_group":  1,
		}}, methods.posts)
	})

	t.Run("error is returned", func(t *testing.T) {
		methods := &fakeMethods{postErr: errors.New("access to adding post denied")}
		err := newAdapter(methods, false).Publish(ctx, domain.NewWallPost(groupID, "Hello"))
		assert.ErrorContains(t, err, "wall.post")
	})
}
