package domain

import (
	"path/filepath"
	"strings"
)

type Kind string

const (
	KindNone      Kind = "none"
	KindPhoto     Kind = "photo"
	KindVideo     Kind = "video"
	KindAnimation Kind = "animation"
	KindDocument  Kind = "document"
)

const (
	videoExt       = ".mp4"
	VideoTitle     = "Video"
	AnimationTitle = "GIF"
)

// Selection is the single attachment picked from a message.
type Selection struct {
	Kind     Kind
	FileID   string
	FileName string
	Title    string
}

// IsDocument reports whether the selection goes through the document upload.
func (s Selection) IsDocument() bool {
	return s.Kind == KindVideo || s.Kind == KindAnimation || s.Kind == KindDocument
}

// Classify picks at most one attachment in the order photo, video, animation, document.
func Classify(m Message) Selection {
	if len(m.Photos) > 0 {
		p := largestPhoto(m.Photos)
		return Selection{Kind: KindPhoto, FileID: p.FileID}
	}

	if m.Video != nil {
		return Selection{
			Kind:     KindVideo,
			FileID:   m.Video.FileID,
			FileName: safeName(m.Video.FileUniqueID) + videoExt,
			Title:    VideoTitle,
		}
	}

	if m.Animation != nil {
		return Selection{
			Kind:     KindAnimation,
			FileID:   m.Animation.FileID,
			FileName: safeName(m.Animation.FileUniqueID) + videoExt,
			Title:    AnimationTitle,
		}
	}

	if m.Document != nil {
		name := safeName(m.Document.FileName)
		if name == "" {
			name = safeName(m.Document.FileUniqueID)
		}
		return Selection{
			Kind:     KindDocument,
			FileID:   m.Document.FileID,
			FileName: name,
			Title:    name,
		}
	}

	return Selection{Kind: KindNone}
}

// Telegram sends photo sizes in ascending order, the area check covers clients that don't.
func largestPhoto(sizes []PhotoSize) PhotoSize {
	best := sizes[len(sizes)-1]
	for _, s := range sizes {
		if s.Width*s.Height > best.Width*best.Height {
			best = s
		}
	}
	return best
}

func safeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
