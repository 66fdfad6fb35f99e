package data

import (
	"context"
	"fmt"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
	"github.com/codewithmercy/community-bot/internal/biz/repo"
	"github.com/codewithmercy/community-bot/telegram"
)

// telegramChatAPI adapts the Telegram client to the ChatAPI interface
type telegramChatAPI struct {
	client *telegram.Client
}

// NewChatAPI creates a ChatAPI backed by the Telegram client
func NewChatAPI(client *telegram.Client) repo.ChatAPI {
	return &telegramChatAPI{client: client}
}

func (a *telegramChatAPI) GetChatAdministrators(ctx context.Context, chatID int64) ([]domain.User, error) {
	admins, err := a.client.GetChatAdministrators(ctx, chatID)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(admins))
	for _, admin := range admins {
		users = append(users, domain.User{
			ID:        admin.ID,
			Username:  admin.Username,
			FirstName: admin.FirstName,
		})
	}
	return users, nil
}

func (a *telegramChatAPI) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	err := a.client.DeleteMessage(ctx, chatID, messageID)
	if err != nil && telegram.IsPermissionDenied(err) {
		return fmt.Errorf("%w: %w", repo.ErrPermissionDenied, err)
	}
	return err
}

func (a *telegramChatAPI) SendMessage(ctx context.Context, to domain.Target, text string, mode repo.ParseMode) error {
	err := a.client.SendMessage(ctx, recipient(to), text, string(mode))
	if err != nil && telegram.IsPermissionDenied(err) {
		return fmt.Errorf("%w: %w", repo.ErrPermissionDenied, err)
	}
	return err
}

func (a *telegramChatAPI) SendPhoto(ctx context.Context, to domain.Target, imageURL, caption string) error {
	return a.client.SendPhoto(ctx, recipient(to), imageURL, caption)
}

func (a *telegramChatAPI) SendVideo(ctx context.Context, to domain.Target, videoURL, caption string) error {
	return a.client.SendVideo(ctx, recipient(to), videoURL, caption)
}

func recipient(to domain.Target) telegram.Recipient {
	return telegram.Recipient{ChatID: to.ChatID, Channel: to.Channel}
}
