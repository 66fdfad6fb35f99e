package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
	"github.com/codewithmercy/community-bot/internal/biz/repo"
)

const memeCaption = "🎉 Enjoy this random programming meme!"

// MemePoster periodically fetches a random meme and posts it to the
// channel. Pure timer -> fetch -> send; no state survives a failure, the
// next round just tries again.
type MemePoster struct {
	feed    repo.MemeFeed
	chat    repo.ChatAPI
	channel domain.Target

	initialDelay time.Duration
	interval     time.Duration
	log          zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMemePoster creates the meme poster
func NewMemePoster(feed repo.MemeFeed, chat repo.ChatAPI, channel domain.Target, initialDelay, interval time.Duration, log zerolog.Logger) *MemePoster {
	return &MemePoster{
		feed:         feed,
		chat:         chat,
		channel:      channel,
		initialDelay: initialDelay,
		interval:     interval,
		log:          log,
	}
}

// Start starts the posting loop
func (p *MemePoster) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	go p.loop()
	p.log.Info().
		Dur("initial_delay", p.initialDelay).
		Dur("interval", p.interval).
		Msg("meme poster started")
}

// Stop stops the posting loop
func (p *MemePoster) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

func (p *MemePoster) loop() {
	defer p.wg.Done()

	select {
	case <-p.ctx.Done():
		return
	case <-time.After(p.initialDelay):
	}
	p.postOnce()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.postOnce()
		}
	}
}

func (p *MemePoster) postOnce() {
	imageURL, err := p.feed.FetchRandomMeme(p.ctx)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to fetch meme")
		return
	}

	if err := p.chat.SendPhoto(p.ctx, p.channel, imageURL, memeCaption); err != nil {
		p.log.Error().Err(err).Str("image_url", imageURL).Msg("failed to post meme")
		return
	}
	p.log.Info().Msg("meme posted to channel")
}
