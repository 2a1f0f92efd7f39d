package ports

import (
	"context"
	"sync"

	"github.com/dkeysil/tg2vk/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the part of *tgbotapi.BotAPI the port uses.
type Bot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type MessageHandler interface {
	Handle(ctx context.Context, msg domain.Message)
}

type TelegramPort struct {
	handler MessageHandler
	logger  *zap.Logger

	bot Bot
	wg  sync.WaitGroup
}

func NewTelegramPort(bot Bot, logger *zap.Logger) *TelegramPort {
	return &TelegramPort{
		logger: logger,
		bot:    bot,
	}
}

// SetHandler must be called before Listen, the relay needs the port as its notifier.
func (p *TelegramPort) SetHandler(handler MessageHandler) {
	p.handler = handler
}

// Listen long-polls Telegram until ctx is done, then waits for messages in flight.
func (p *TelegramPort) Listen(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	p.listen(ctx, p.bot.GetUpdatesChan(u))
	p.bot.StopReceivingUpdates()
	p.wg.Wait()
}

func (p *TelegramPort) listen(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			if update.Message == nil {
				continue
			}

			msg := ToDomainMessage(update.Message)
			p.logger.Debug(
				"message received",
				zap.Int("message_id", msg.ID),
				zap.Int64("sender_id", msg.SenderID),
			)

			p.wg.Add(1)
			go func() {
				defer p.wg.Done()
				p.handler.Handle(ctx, msg)
			}()
		}
	}
}

func (p *TelegramPort) Notify(ctx context.Context, chatID int64, replyTo int, text string) error {
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ReplyToMessageID = replyTo

	_, err := p.bot.Send(reply)
	return err
}
