package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
)

var testChannel = domain.ChannelTarget("@testchannel")

func newDispatch(posts *mockPostRepo, chat *mockChatAPI) *DispatchUsecase {
	return NewDispatchUsecase(posts, chat, testChannel, zerolog.Nop())
}

func pendingPost(posts *mockPostRepo, post domain.ScheduledPost) int64 {
	_ = posts.Create(context.Background(), &post)
	return post.ID
}

func TestDispatchDue_TextPost(t *testing.T) {
	now := time.Now()
	posts := newMockPostRepo()
	chat := &mockChatAPI{}
	pendingPost(posts, domain.ScheduledPost{Text: "hello channel", ScheduledAt: now.Add(-time.Minute)})

	newDispatch(posts, chat).DispatchDue(context.Background(), now)

	if len(chat.messages) != 1 {
		t.Fatalf("Expected one text send, got %d", len(chat.messages))
	}
	if chat.messages[0].Text != "hello channel" {
		t.Errorf("Expected post body, got %q", chat.messages[0].Text)
	}
	if chat.messages[0].To != testChannel {
		t.Errorf("Expected send to channel, got %+v", chat.messages[0].To)
	}
}

func TestDispatchDue_SecondTickIsNoop(t *testing.T) {
	now := time.Now()
	posts := newMockPostRepo()
	chat := &mockChatAPI{}
	pendingPost(posts, domain.ScheduledPost{Text: "once only", ScheduledAt: now.Add(-time.Minute)})

	uc := newDispatch(posts, chat)
	uc.DispatchDue(context.Background(), now)
	uc.DispatchDue(context.Background(), now.Add(time.Minute))

	if got := chat.sendCalls(); got != 1 {
		t.Errorf("Expected exactly one send across two ticks, got %d", got)
	}
	if posts.markCalls != 1 {
		t.Errorf("Expected exactly one transition attempt, got %d", posts.markCalls)
	}
}

func TestDispatchDue_FuturePostNotSent(t *testing.T) {
	now := time.Now()
	posts := newMockPostRepo()
	chat := &mockChatAPI{}
	pendingPost(posts, domain.ScheduledPost{Text: "later", ScheduledAt: now.Add(time.Hour)})

	newDispatch(posts, chat).DispatchDue(context.Background(), now)

	if got := chat.sendCalls(); got != 0 {
		t.Errorf("Expected no sends for a future post, got %d", got)
	}
}

func TestDispatchDue_PhotoPost(t *testing.T) {
	now := time.Now()
	posts := newMockPostRepo()
	chat := &mockChatAPI{}
	pendingPost(posts, domain.ScheduledPost{
		Text:        "caption text",
		ImageURL:    "https://cdn.example.org/a.png",
		ScheduledAt: now.Add(-time.Minute),
	})

	newDispatch(posts, chat).DispatchDue(context.Background(), now)

	if len(chat.photos) != 1 {
		t.Fatalf("Expected one photo send, got %d", len(chat.photos))
	}
	if chat.photos[0].Caption != "caption text" {
		t.Errorf("Expected body as caption, got %q", chat.photos[0].Caption)
	}
	if chat.sendCalls() != 1 {
		t.Errorf("Expected photo path only, got %d sends", chat.sendCalls())
	}
}

func TestDispatchDue_VideoPost(t *testing.T) {
	now := time.Now()
	posts := newMockPostRepo()
	chat := &mockChatAPI{}
	pendingPost(posts, domain.ScheduledPost{
		Text:        "watch this",
		VideoURL:    "https://cdn.example.org/v.mp4",
		ScheduledAt: now.Add(-time.Minute),
	})

	newDispatch(posts, chat).DispatchDue(context.Background(), now)

	if len(chat.videos) != 1 {
		t.Fatalf("Expected one video send, got %d", len(chat.videos))
	}
	if chat.videos[0].URL != "https://cdn.example.org/v.mp4" {
		t.Errorf("Expected video URL, got %q", chat.videos[0].URL)
	}
	if chat.videos[0].Caption != "watch this" {
		t.Errorf("Expected body as caption, got %q", chat.videos[0].Caption)
	}
}

func TestDispatchDue_SendFailureLeavesPostPending(t *testing.T) {
	now := time.Now()
	posts := newMockPostRepo()
	chat := &mockChatAPI{sendErr: errors.New("rate limited")}
	id := pendingPost(posts, domain.ScheduledPost{Text: "retry me", ScheduledAt: now.Add(-time.Minute)})

	uc := newDispatch(posts, chat)
	uc.DispatchDue(context.Background(), now)

	if posts.markCalls != 0 {
		t.Errorf("Expected no transition after failed send, got %d", posts.markCalls)
	}
	if posts.posts[id].Status != domain.PostPending {
		t.Errorf("Expected post to stay pending, got %s", posts.posts[id].Status)
	}

	// a later tick retries and succeeds
	chat.sendErr = nil
	uc.DispatchDue(context.Background(), now.Add(time.Minute))

	if posts.posts[id].Status != domain.PostSent {
		t.Errorf("Expected post sent after retry, got %s", posts.posts[id].Status)
	}
}

func TestDispatchDue_QueryFailureIsIsolated(t *testing.T) {
	posts := newMockPostRepo()
	posts.queryErr = errors.New("store down")
	chat := &mockChatAPI{}

	newDispatch(posts, chat).DispatchDue(context.Background(), time.Now())

	if chat.sendCalls() != 0 {
		t.Errorf("Expected no sends when the store is down, got %d", chat.sendCalls())
	}
}

func TestDispatchDue_MultiplePosts(t *testing.T) {
	now := time.Now()
	posts := newMockPostRepo()
	chat := &mockChatAPI{}
	pendingPost(posts, domain.ScheduledPost{Text: "first", ScheduledAt: now.Add(-2 * time.Minute)})
	pendingPost(posts, domain.ScheduledPost{Text: "second", ScheduledAt: now.Add(-time.Minute)})

	newDispatch(posts, chat).DispatchDue(context.Background(), now)

	if len(chat.messages) != 2 {
		t.Errorf("Expected both posts delivered, got %d", len(chat.messages))
	}
}
