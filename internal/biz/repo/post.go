package repo

import (
	"context"
	"time"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
)

// PostRepo is the scheduled post store.
//
// MarkSent is the store's conditional-transition contract: the pending ->
// sent write succeeds only if the post is still pending, which is what keeps
// a post from being delivered twice by racing ticks or a restarted process.
type PostRepo interface {
	// Create persists a new pending post and assigns its ID
	Create(ctx context.Context, post *domain.ScheduledPost) error

	// QueryDue returns all pending posts with scheduled_at <= now
	QueryDue(ctx context.Context, now time.Time) ([]*domain.ScheduledPost, error)

	// MarkSent transitions a post pending -> sent. Returns false (and no
	// error) when the post was no longer pending.
	MarkSent(ctx context.Context, id int64) (bool, error)

	// Close closes the underlying store
	Close() error
}
