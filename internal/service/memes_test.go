package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
)

type stubMemeFeed struct {
	mu    sync.Mutex
	urls  []string
	err   error
	calls int
}

func (f *stubMemeFeed) FetchRandomMeme(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.urls[(f.calls-1)%len(f.urls)], nil
}

func (f *stubMemeFeed) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestMemePoster_PostsAfterInitialDelay(t *testing.T) {
	chat := &recordingChat{}
	feed := &stubMemeFeed{urls: []string{"https://example.com/meme1.png"}}

	poster := NewMemePoster(feed, chat, domain.ChannelTarget("@chan"), 5*time.Millisecond, time.Hour, zerolog.Nop())
	poster.Start(context.Background())
	defer poster.Stop()

	require.Eventually(t, func() bool {
		chat.mu.Lock()
		defer chat.mu.Unlock()
		return len(chat.photos) == 1 && chat.photos[0] == "https://example.com/meme1.png"
	}, time.Second, 5*time.Millisecond)
}

func TestMemePoster_KeepsTickingAfterFetchFailure(t *testing.T) {
	chat := &recordingChat{}
	feed := &stubMemeFeed{err: errors.New("feed down")}

	poster := NewMemePoster(feed, chat, domain.ChannelTarget("@chan"), time.Millisecond, 5*time.Millisecond, zerolog.Nop())
	poster.Start(context.Background())
	defer poster.Stop()

	require.Eventually(t, func() bool { return feed.callCount() >= 3 }, time.Second, time.Millisecond)

	chat.mu.Lock()
	defer chat.mu.Unlock()
	require.Empty(t, chat.photos)
}
