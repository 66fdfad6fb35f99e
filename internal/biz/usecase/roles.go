package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
	"github.com/codewithmercy/community-bot/internal/biz/repo"
)

// RoleResolver resolves a sender's role in a chat against the live
// administrator list. The owner ID comes from static configuration, not
// from chat data.
type RoleResolver struct {
	chat    repo.ChatAPI
	ownerID int64
	log     zerolog.Logger
}

// NewRoleResolver creates a new role resolver
func NewRoleResolver(chat repo.ChatAPI, ownerID int64, log zerolog.Logger) *RoleResolver {
	return &RoleResolver{
		chat:    chat,
		ownerID: ownerID,
		log:     log,
	}
}

// Resolve returns the sender's role. When the admin-list fetch fails the
// lookup fails closed to member: an unresolved role must not grant a
// moderation bypass.
func (r *RoleResolver) Resolve(ctx context.Context, chatID, userID int64) domain.Role {
	admins, err := r.chat.GetChatAdministrators(ctx, chatID)
	if err != nil {
		r.log.Warn().
			Err(err).
			Int64("chat_id", chatID).
			Int64("user_id", userID).
			Msg("admin list fetch failed, treating sender as member")
		return domain.RoleMember
	}

	for _, admin := range admins {
		if admin.ID == userID {
			return domain.RoleAdmin
		}
	}
	if userID == r.ownerID {
		return domain.RoleOwner
	}
	return domain.RoleMember
}
