package bot

import (
	"context"

	"crypto-tracker/internal/interfaces"

	tgbot "github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
)

// Bot wires the Telegram long-polling transport to a Handler. All
// inbound messages flow through a single default handler so that
// pending sessions see the next raw message before command routing.
type Bot struct {
	api     *tgbot.Bot
	handler *Handler
	logger  *zerolog.Logger
}

// New connects to Telegram with the given credential.
func New(token string, logger *zerolog.Logger) (*Bot, error) {
	b := &Bot{logger: logger}

	api, err := tgbot.New(token, tgbot.WithDefaultHandler(b.onUpdate))
	if err != nil {
		return nil, err
	}
	b.api = api

	return b, nil
}

// Bind attaches the dispatch handler. Updates arriving before Bind are
// dropped.
func (b *Bot) Bind(handler *Handler) {
	b.handler = handler
}

// Messenger returns the outbound side of the chat transport.
func (b *Bot) Messenger() interfaces.Messenger {
	return &telegramMessenger{api: b.api}
}

// Run starts long polling and blocks until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	b.api.Start(ctx)
}

func (b *Bot) onUpdate(ctx context.Context, _ *tgbot.Bot, update *tgmodels.Update) {
	if b.handler == nil || update.Message == nil || update.Message.Text == "" {
		return
	}
	b.handler.HandleText(ctx, update.Message.Chat.ID, update.Message.Text)
}

type telegramMessenger struct {
	api *tgbot.Bot
}

func (t *telegramMessenger) Send(ctx context.Context, userID int64, text string) error {
	_, err := t.api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: userID,
		Text:   text,
	})
	return err
}
