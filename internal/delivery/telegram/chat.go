package telegram

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/telebot.v3"

	"github.com/koinbxtitas/crypto-frontend/internal/dto"
	"github.com/koinbxtitas/crypto-frontend/internal/service"
	"github.com/koinbxtitas/crypto-frontend/pkg/cache"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
	"github.com/koinbxtitas/crypto-frontend/pkg/telegram"
)

const chatConversationKey = "tg_conversation:%d"

func (t *TelegramBotHandler) handleStart(ctx context.Context, c telebot.Context) error {
	conversationID, session, err := t.chatService.StartConversation(ctx)
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to start telegram conversation", logger.ErrorField(err))
		return c.Send("Something went wrong, please try /start again.")
	}

	t.inmemoryCache.Set(fmt.Sprintf(chatConversationKey, c.Chat().ID), conversationID, t.cfg.Widget.SessionTTL)

	for _, msg := range session.Messages() {
		if err := t.sendMessage(c, msg); err != nil {
			return err
		}
	}
	return nil
}

func (t *TelegramBotHandler) handleReset(ctx context.Context, c telebot.Context) error {
	conversationID, ok := cache.GetTyped[string](t.inmemoryCache, fmt.Sprintf(chatConversationKey, c.Chat().ID))
	if !ok {
		return t.handleStart(ctx, c)
	}

	session, err := t.chatService.Reset(ctx, conversationID)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			return t.handleStart(ctx, c)
		}
		t.log.ErrorContext(ctx, "Failed to reset telegram conversation", logger.ErrorField(err))
		return c.Send("Could not clear the conversation, please try again.")
	}

	for _, msg := range session.Messages() {
		if err := t.sendMessage(c, msg); err != nil {
			return err
		}
	}
	return nil
}

func (t *TelegramBotHandler) handleTextMessage(ctx context.Context, c telebot.Context) error {
	conversationID, ok := cache.GetTyped[string](t.inmemoryCache, fmt.Sprintf(chatConversationKey, c.Chat().ID))
	if !ok {
		if err := t.handleStart(ctx, c); err != nil {
			return err
		}
		conversationID, ok = cache.GetTyped[string](t.inmemoryCache, fmt.Sprintf(chatConversationKey, c.Chat().ID))
		if !ok {
			return nil
		}
	}

	appended, err := t.chatService.Submit(ctx, conversationID, c.Text())
	if err != nil {
		if errors.Is(err, service.ErrBusy) {
			return c.Send("⏳ Still working on your previous question, one moment.")
		}
		t.log.ErrorContext(ctx, "Failed to submit telegram message", logger.ErrorField(err))
		return c.Send("Something went wrong, please try again.")
	}

	// echo only the assistant entries back, the user already sees their own text
	for _, msg := range appended {
		if msg.Origin != dto.OriginAssistant {
			continue
		}
		if err := t.sendMessage(c, msg); err != nil {
			return err
		}
	}
	return nil
}

func (t *TelegramBotHandler) sendMessage(c telebot.Context, msg dto.Message) error {
	switch {
	case msg.Kind == dto.KindPortfolio && msg.Portfolio != nil:
		return c.Send(telegram.FormatPortfolioForTelegram(msg.Portfolio, 0), telebot.ModeMarkdown)
	case msg.Kind == dto.KindProfitLoss && msg.ProfitLoss != nil:
		return c.Send(telegram.FormatProfitLossForTelegram(msg.ProfitLoss), telebot.ModeMarkdown)
	default:
		if msg.Text == "" {
			return nil
		}
		return c.Send(msg.Text, telebot.ModeMarkdown)
	}
}
