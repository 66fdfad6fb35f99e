package repo

import (
	"context"
	"errors"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
)

// ParseMode selects outbound message formatting
type ParseMode string

const (
	ParsePlain    ParseMode = ""
	ParseHTML     ParseMode = "HTML"
	ParseMarkdown ParseMode = "Markdown"
)

// ErrPermissionDenied is returned when the bot lacks the rights for an
// action (e.g. deleting messages in a chat it does not moderate). It marks
// an operational misconfiguration rather than a transient failure, so
// callers log it distinctly and do not retry within the same invocation.
var ErrPermissionDenied = errors.New("bot lacks permission for this action")

// ChatAPI is the outbound messaging interface.
// All calls hit the Telegram Bot API; any of them can fail with a transport
// error, which callers treat as transient.
type ChatAPI interface {
	// GetChatAdministrators fetches the current admin list of a chat
	GetChatAdministrators(ctx context.Context, chatID int64) ([]domain.User, error)

	// DeleteMessage removes a message from a chat
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error

	// SendMessage sends a text message
	SendMessage(ctx context.Context, to domain.Target, text string, mode ParseMode) error

	// SendPhoto sends a photo by URL with a caption
	SendPhoto(ctx context.Context, to domain.Target, imageURL, caption string) error

	// SendVideo sends a video by URL with a caption
	SendVideo(ctx context.Context, to domain.Target, videoURL, caption string) error
}
