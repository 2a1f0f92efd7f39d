package vk

import (
	"errors"

	"github.com/SevereCloud/vksdk/v2/api"
)

// Methods is the part of the VK API the adapter calls.
type Methods interface {
	PhotoUploadServer(groupID int64) (string, error)
	SaveWallPhoto(params api.Params) (ownerID, id int, err error)
	DocUploadServer(groupID int64) (string, error)
	SaveDoc(params api.Params) (ownerID, id int, err error)
	WallPost(params api.Params) (postID int, err error)
}

type sdkMethods struct {
	vk *api.VK
}

func (m sdkMethods) PhotoUploadServer(groupID int64) (string, error) {
	resp, err := m.vk.PhotosGetWallUploadServer(api.Params{"group_id": groupID})
	if err != nil {
		return "", err
	}
	return resp.UploadURL, nil
}

func (m sdkMethods) SaveWallPhoto(params api.Params) (int, int, error) {
	resp, err := m.vk.PhotosSaveWallPhoto(params)
	if err != nil {
		return 0, 0, err
	}
	if len(resp) == 0 {
		return 0, 0, errors.New("photos.saveWallPhoto returned no photos")
	}
	return resp[0].OwnerID, resp[0].ID, nil
}

func (m sdkMethods) DocUploadServer(groupID int64) (string, error) {
	resp, err := m.vk.DocsGetWallUploadServer(api.Params{"group_id": groupID})
	if err != nil {
		return "", err
	}
	return resp.UploadURL, nil
}

func (m sdkMethods) SaveDoc(params api.Params) (int, int, error) {
	resp, err := m.vk.DocsSave(params)
	if err != nil {
		return 0, 0, err
	}
	return resp.Doc.OwnerID, resp.Doc.ID, nil
}

func (m sdkMethods) WallPost(params api.Params) (int, error) {
	resp, err := m.vk.WallPost(params)
	if err != nil {
		return 0, err
	}
	return resp.PostID, nil
}
