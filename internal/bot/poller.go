package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot runs the Telegram long-polling loop and feeds commands to the
// handler. Updates are handled one at a time: a digest request runs
// to completion before the next command is looked at.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
}

func New(token string, newHandler func(Sender) *Handler) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	return &Bot{
		api:     api,
		handler: newHandler(apiSender{api: api}),
	}, nil
}

// Run polls for updates until ctx is canceled.
func (b *Bot) Run(ctx context.Context) {
	slog.Info("bot started", "username", b.api.Self.UserName)

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			msg := update.Message
			if msg == nil || !msg.IsCommand() || msg.From == nil {
				continue
			}
			b.handler.HandleCommand(ctx, msg.Chat.ID, msg.From.ID,
				msg.Command(), msg.CommandArguments())
		}
	}
}

type apiSender struct {
	api *tgbotapi.BotAPI
}

func (s apiSender) Send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	_, err := s.api.Send(msg)
	return err
}
