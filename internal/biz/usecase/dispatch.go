package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
	"github.com/codewithmercy/community-bot/internal/biz/repo"
)

// DispatchUsecase delivers due scheduled posts to the channel.
//
// Delivery is send-then-commit: the pending -> sent transition happens only
// after a successful send, and is conditional on the post still being
// pending. A send failure leaves the post pending for retry on a later
// tick. A crash between send and commit re-delivers the post on restart;
// delivery is at-least-once, not exactly-once.
type DispatchUsecase struct {
	posts   repo.PostRepo
	chat    repo.ChatAPI
	channel domain.Target
	log     zerolog.Logger
}

// NewDispatchUsecase creates the dispatcher
func NewDispatchUsecase(posts repo.PostRepo, chat repo.ChatAPI, channel domain.Target, log zerolog.Logger) *DispatchUsecase {
	return &DispatchUsecase{
		posts:   posts,
		chat:    chat,
		channel: channel,
		log:     log,
	}
}

// DispatchDue delivers every pending post whose schedule time has passed.
// Invoked once per clock tick; the clock guarantees ticks never overlap.
// One post's failure never aborts the rest of the batch.
func (uc *DispatchUsecase) DispatchDue(ctx context.Context, now time.Time) {
	due, err := uc.posts.QueryDue(ctx, now)
	if err != nil {
		uc.log.Error().Err(err).Msg("failed to query due posts")
		return
	}
	if len(due) == 0 {
		return
	}

	uc.log.Info().Int("count", len(due)).Msg("dispatching due posts")

	for _, post := range due {
		uc.dispatch(ctx, post)
	}
}

func (uc *DispatchUsecase) dispatch(ctx context.Context, post *domain.ScheduledPost) {
	log := uc.log.With().Int64("post_id", post.ID).Logger()

	if err := uc.send(ctx, post); err != nil {
		log.Error().Err(err).Msg("failed to send post, will retry next tick")
		return
	}

	sent, err := uc.posts.MarkSent(ctx, post.ID)
	if err != nil {
		// The post stays pending and will be re-delivered next tick.
		log.Error().Err(err).Msg("post sent but status update failed, duplicate delivery possible")
		return
	}
	if !sent {
		log.Warn().Msg("post was already marked sent by a concurrent dispatch")
		return
	}

	log.Info().Msg("post delivered")
}

func (uc *DispatchUsecase) send(ctx context.Context, post *domain.ScheduledPost) error {
	switch {
	case post.ImageURL != "":
		return uc.chat.SendPhoto(ctx, uc.channel, post.ImageURL, post.Text)
	case post.VideoURL != "":
		return uc.chat.SendVideo(ctx, uc.channel, post.VideoURL, post.Text)
	default:
		return uc.chat.SendMessage(ctx, uc.channel, post.Text, repo.ParseMarkdown)
	}
}
