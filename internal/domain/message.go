package domain

type PhotoSize struct {
	FileID       string
	FileUniqueID string
	Width        int
	Height       int
}

type File struct {
	FileID       string
	FileUniqueID string
	FileName     string
}

// Message is an inbound Telegram message reduced to the fields the relay needs.
type Message struct {
	ID       int
	ChatID   int64
	SenderID int64

	Text    string
	Caption string

	Photos    []PhotoSize
	Video     *File
	Animation *File
	Document  *File
}

// Body returns the caption of a media message or the text of a plain one.
func (m Message) Body() string {
	if m.Caption != "" {
		return m.Caption
	}
	return m.Text
}
