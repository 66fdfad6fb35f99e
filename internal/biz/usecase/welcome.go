package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
	"github.com/codewithmercy/community-bot/internal/biz/repo"
)

// WelcomeUsecase greets users joining a group. Best effort only: a failed
// greeting is logged and dropped.
type WelcomeUsecase struct {
	chat repo.ChatAPI
	log  zerolog.Logger
}

// NewWelcomeUsecase creates the welcome handler
func NewWelcomeUsecase(chat repo.ChatAPI, log zerolog.Logger) *WelcomeUsecase {
	return &WelcomeUsecase{chat: chat, log: log}
}

// Greet sends one welcome message per joined user
func (uc *WelcomeUsecase) Greet(ctx context.Context, chatID int64, users []domain.User) {
	for _, user := range users {
		text := fmt.Sprintf(
			"🎉 Welcome to the group, %s! Please make sure to follow the group rules. If you post any links or violate the rules, your message will be removed.",
			user.DisplayName(),
		)
		if err := uc.chat.SendMessage(ctx, domain.GroupTarget(chatID), text, repo.ParsePlain); err != nil {
			uc.log.Error().
				Err(err).
				Int64("chat_id", chatID).
				Int64("user_id", user.ID).
				Msg("failed to send welcome message")
		}
	}
}
