package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/dvloznov/budgetbuddy/internal/turns"
)

// Bot is the Telegram transport. Commands are answered inline; free-text
// messages go through the turn queue so slow oracle calls do not stall
// the update loop.
type Bot struct {
	api    *tgbotapi.BotAPI
	router *Router
	queue  turns.Publisher
	log    zerolog.Logger
}

// New authenticates against the Telegram API and returns the transport.
func New(token string, router *Router, queue turns.Publisher, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("New: authenticating bot: %w", err)
	}
	log.Info().Str("username", api.Self.UserName).Msg("authorized on telegram")
	return &Bot{
		api:    api,
		router: router,
		queue:  queue,
		log:    log,
	}, nil
}

// Run polls for updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			b.dispatch(ctx, update.Message)
		}
	}
}

// HandleTurn is the queue handler: it routes one free-text turn and
// sends the resulting replies.
func (b *Bot) HandleTurn(ctx context.Context, t *turns.Turn) error {
	replies := b.router.HandleMessage(ctx, t.Sender, t.Text)
	return b.send(t.ChatID, replies)
}

func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sender := msg.From.ID

	if msg.IsCommand() {
		var replies []Reply
		switch msg.Command() {
		case "start":
			replies = b.router.HandleStart(ctx, sender, msg.From.FirstName)
		case "balance":
			replies = b.router.HandleBalance(ctx, sender)
		case "statement":
			replies = b.router.HandleStatement(ctx, sender)
		default:
			replies = []Reply{{Text: "Unknown command. Try /balance or /statement, or just tell me about a transaction."}}
		}
		if err := b.send(chatID, replies); err != nil {
			b.log.Error().Err(err).Int64("chat_id", chatID).Msg("sending command reply failed")
		}
		return
	}

	if msg.Text == "" {
		return
	}

	t := &turns.Turn{
		ChatID: chatID,
		Sender: sender,
		Text:   msg.Text,
	}
	if err := b.queue.Publish(ctx, t); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("publishing turn failed")
		if err := b.send(chatID, []Reply{{Text: msgTryAgainLater}}); err != nil {
			b.log.Error().Err(err).Int64("chat_id", chatID).Msg("sending overload notice failed")
		}
	}
}

func (b *Bot) send(chatID int64, replies []Reply) error {
	for _, reply := range replies {
		var err error
		if reply.Document != nil {
			doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
				Name:  reply.Document.Filename,
				Bytes: reply.Document.Data,
			})
			doc.Caption = reply.Document.Caption
			_, err = b.api.Send(doc)
		} else {
			_, err = b.api.Send(tgbotapi.NewMessage(chatID, reply.Text))
		}
		if err != nil {
			return fmt.Errorf("send: delivering reply to chat %d: %w", chatID, err)
		}
	}
	return nil
}
