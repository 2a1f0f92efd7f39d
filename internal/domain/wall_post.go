package domain

import (
	"fmt"
	"strings"
)

// AttachmentRef is a VK attachment token, e.g. photo-100_555 or doc-100_7.
type AttachmentRef string

func PhotoRef(ownerID, id int) AttachmentRef {
	return AttachmentRef(fmt.Sprintf("photo%d_%d", ownerID, id))
}

func DocRef(ownerID, id int) AttachmentRef {
	return AttachmentRef(fmt.Sprintf("doc%d_%d", ownerID, id))
}

type WallPost struct {
	// OwnerID is negative for group walls.
	OwnerID     int64
	Message     string
	Attachments []AttachmentRef
}

func NewWallPost(groupID int64, message string, attachments ...AttachmentRef) WallPost {
	return WallPost{
		OwnerID:     -groupID,
		Message:     message,
		Attachments: attachments,
	}
}

// AttachmentsParam joins attachments for wall.post, empty means the parameter is omitted.
func (p WallPost) AttachmentsParam() string {
	refs := make([]string, 0, len(p.Attachments))
	for _, a := range p.Attachments {
		refs = append(refs, string(a))
	}
	return strings.Join(refs, ",")
}
