// Package bot is the Telegram command surface: /start, /subscribe and
// /news. Handlers hold no transport state; everything they need comes
// in through small interfaces so the command logic is testable without
// Telegram.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/deusflow/newsbot/internal/digest"
	"github.com/deusflow/newsbot/internal/metrics"
	"github.com/deusflow/newsbot/internal/model"
)

const helpText = "Hi! I'm a smart news bot 🤖\n\n" +
	"1. Send /subscribe <topics>, for example: /subscribe space, technology\n" +
	"2. Then send /news to get a digest matching your topics 🗞️"

const (
	subscribeUsage  = "Please list topics separated by commas. Example: /subscribe ai, space"
	noSubscription  = "You haven't picked any topics yet. Send /subscribe <topics>"
	noMatches       = "Couldn't find news for your topics 😕"
	internalTrouble = "Something went wrong while building your digest. Please try again later."
	saveTrouble     = "Couldn't save your topics. Please try again later."
)

// Sender delivers one text message to a chat.
type Sender interface {
	Send(chatID int64, text string) error
}

// SubscriptionWriter replaces a user's stored tag set.
type SubscriptionWriter interface {
	SetTags(ctx context.Context, userID int64, tags []string) error
}

// DigestBuilder runs one digest request.
type DigestBuilder interface {
	Build(ctx context.Context, userID int64) ([]digest.Entry, error)
}

type Handler struct {
	sender        Sender
	store         SubscriptionWriter
	digests       DigestBuilder
	digestTimeout time.Duration
}

func NewHandler(sender Sender, store SubscriptionWriter, digests DigestBuilder, digestTimeout time.Duration) *Handler {
	return &Handler{
		sender:        sender,
		store:         store,
		digests:       digests,
		digestTimeout: digestTimeout,
	}
}

// HandleCommand routes one bot command. Unknown commands are ignored.
func (h *Handler) HandleCommand(ctx context.Context, chatID, userID int64, command, args string) {
	switch command {
	case "start":
		h.reply(chatID, helpText)
	case "subscribe":
		h.handleSubscribe(ctx, chatID, userID, args)
	case "news", "digest":
		h.handleNews(ctx, chatID, userID)
	}
}

func (h *Handler) handleSubscribe(ctx context.Context, chatID, userID int64, args string) {
	tags := model.ParseTags(args)
	if len(tags) == 0 {
		h.reply(chatID, subscribeUsage)
		return
	}

	if err := h.store.SetTags(ctx, userID, tags); err != nil {
		slog.Error("failed to store subscription", "user", userID, "error", err)
		h.reply(chatID, saveTrouble)
		return
	}

	metrics.Global.IncrementSubscriptionsSaved()
	h.reply(chatID, "Topics saved: "+strings.Join(tags, ", "))
}

func (h *Handler) handleNews(ctx context.Context, chatID, userID int64) {
	// A slow oracle or feed must not pin the request forever; the
	// timeout bounds one digest without reordering its entries.
	ctx, cancel := context.WithTimeout(ctx, h.digestTimeout)
	defer cancel()

	entries, err := h.digests.Build(ctx, userID)
	switch {
	case errors.Is(err, digest.ErrNoSubscription):
		h.reply(chatID, noSubscription)
		return
	case errors.Is(err, digest.ErrNoMatches):
		h.reply(chatID, noMatches)
		return
	case err != nil:
		slog.Error("digest build failed", "user", userID, "error", err)
		metrics.Global.SetError(err.Error())
		h.reply(chatID, internalTrouble)
		return
	}

	for _, entry := range entries {
		h.reply(chatID, entry.Render())
	}
}

func (h *Handler) reply(chatID int64, text string) {
	if err := h.sender.Send(chatID, text); err != nil {
		slog.Error("failed to send message", "chat", chatID, "error", err)
		return
	}
	metrics.Global.IncrementMessagesSent()
}
