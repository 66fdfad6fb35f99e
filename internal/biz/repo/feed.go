package repo

import (
	"context"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
)

// MemeFeed supplies random meme images for the channel poster
type MemeFeed interface {
	FetchRandomMeme(ctx context.Context) (imageURL string, err error)
}

// ChallengeFeed supplies programming challenges for the channel poster
type ChallengeFeed interface {
	FetchChallenge(ctx context.Context) (*domain.Challenge, error)
}
