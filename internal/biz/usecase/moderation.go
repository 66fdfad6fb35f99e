package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
	"github.com/codewithmercy/community-bot/internal/biz/repo"
)

// ModerationUsecase runs the per-message moderation pipeline: skip empty
// and self-sent messages, exempt privileged senders, classify, then delete
// the message and warn the sender.
//
// Handle is invoked once per inbound message; invocations for different
// messages may run concurrently. No state is kept between invocations.
type ModerationUsecase struct {
	chat      repo.ChatAPI
	roles     *RoleResolver
	botID     int64
	warnDelay time.Duration
	log       zerolog.Logger
}

// NewModerationUsecase creates the moderation pipeline. botID is the bot's
// own identity, captured once at startup. warnDelay spaces the warning out
// from the deletion so readers see the message disappear first.
func NewModerationUsecase(chat repo.ChatAPI, roles *RoleResolver, botID int64, warnDelay time.Duration, log zerolog.Logger) *ModerationUsecase {
	return &ModerationUsecase{
		chat:      chat,
		roles:     roles,
		botID:     botID,
		warnDelay: warnDelay,
		log:       log,
	}
}

// Handle processes one inbound message
func (uc *ModerationUsecase) Handle(ctx context.Context, msg *domain.Message) {
	if strings.TrimSpace(msg.Text) == "" {
		return
	}
	if msg.IsFromBot(uc.botID) {
		return
	}

	role := uc.roles.Resolve(ctx, msg.ChatID, msg.Sender.ID)
	if role.Privileged() {
		return
	}

	verdict := Classify(msg.Text)
	if !verdict.Violating() {
		return
	}

	log := uc.log.With().
		Int64("chat_id", msg.ChatID).
		Int("message_id", msg.MessageID).
		Int64("sender_id", msg.Sender.ID).
		Logger()
	log.Info().
		Interface("reasons", verdict.Reasons).
		Msg("message violates content policy")

	// Delete, then warn. Both are independent best-effort network calls:
	// a failed deletion never suppresses the warning.
	if err := uc.chat.DeleteMessage(ctx, msg.ChatID, msg.MessageID); err != nil {
		if errors.Is(err, repo.ErrPermissionDenied) {
			log.Warn().Err(err).Msg("cannot delete message: bot lacks delete rights in this chat")
		} else {
			log.Error().Err(err).Msg("failed to delete message")
		}
	}

	// Give the deletion a moment to become visible before the warning lands.
	// Ordering is best effort only.
	select {
	case <-time.After(uc.warnDelay):
	case <-ctx.Done():
		return
	}

	warning := fmt.Sprintf(
		`⚠️ <a href="tg://user?id=%d">%s</a>, your message was removed as it violated group rules.`,
		msg.Sender.ID, msg.Sender.DisplayName(),
	)
	if err := uc.chat.SendMessage(ctx, domain.GroupTarget(msg.ChatID), warning, repo.ParseHTML); err != nil {
		log.Error().Err(err).Msg("failed to send warning")
	}
}
