package ports

import (
	"github.com/dkeysil/tg2vk/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ToDomainMessage copies the fields the relay cares about out of a Telegram message.
func ToDomainMessage(m *tgbotapi.Message) domain.Message {
	msg := domain.Message{
		ID:      m.MessageID,
		Text:    m.Text,
		Caption: m.Caption,
	}

	if m.Chat != nil {
		msg.ChatID = m.Chat.ID
	}

	if m.From != nil {
		msg.SenderID = m.From.ID
	}

	for _, p := range m.Photo {
		msg.Photos = append(msg.Photos, domain.PhotoSize{
			FileID:       p.FileID,
			FileUniqueID: p.FileUniqueID,
			Width:        p.Width,
			Height:       p.Height,
		})
	}

	if m.Video != nil {
		msg.Video = &domain.File{FileID: m.Video.FileID, FileUniqueID: m.Video.FileUniqueID}
	}

	if m.Animation != nil {
		msg.Animation = &domain.File{
			FileID:       m.Animation.FileID,
			FileUniqueID: m.Animation.FileUniqueID,
			FileName:     m.Animation.FileName,
		}
	}

	if m.Document != nil {
		msg.Document = &domain.File{
			FileID:       m.Document.FileID,
			FileUniqueID: m.Document.FileUniqueID,
			FileName:     m.Document.FileName,
		}
	}

	return msg
}
