package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
	"github.com/codewithmercy/community-bot/internal/biz/repo"
)

// Mock implementations

type sentMessage struct {
	To   domain.Target
	Text string
	Mode repo.ParseMode
}

type sentMedia struct {
	To      domain.Target
	URL     string
	Caption string
}

type mockChatAPI struct {
	mu sync.Mutex

	admins    []domain.User
	adminsErr error
	deleteErr error
	sendErr   error

	adminCalls  int
	deleteCalls int
	messages    []sentMessage
	photos      []sentMedia
	videos      []sentMedia
}

func (m *mockChatAPI) GetChatAdministrators(ctx context.Context, chatID int64) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adminCalls++
	if m.adminsErr != nil {
		return nil, m.adminsErr
	}
	return m.admins, nil
}

func (m *mockChatAPI) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	return m.deleteErr
}

func (m *mockChatAPI) SendMessage(ctx context.Context, to domain.Target, text string, mode repo.ParseMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.messages = append(m.messages, sentMessage{To: to, Text: text, Mode: mode})
	return nil
}

func (m *mockChatAPI) SendPhoto(ctx context.Context, to domain.Target, imageURL, caption string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.photos = append(m.photos, sentMedia{To: to, URL: imageURL, Caption: caption})
	return nil
}

func (m *mockChatAPI) SendVideo(ctx context.Context, to domain.Target, videoURL, caption string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.videos = append(m.videos, sentMedia{To: to, URL: videoURL, Caption: caption})
	return nil
}

func (m *mockChatAPI) sendCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages) + len(m.photos) + len(m.videos)
}

type mockPostRepo struct {
	mu sync.Mutex

	posts    map[int64]*domain.ScheduledPost
	nextID   int64
	queryErr error
	markErr  error

	markCalls int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[int64]*domain.ScheduledPost)}
}

func (m *mockPostRepo) Create(ctx context.Context, post *domain.ScheduledPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	post.ID = m.nextID
	post.Status = domain.PostPending
	copied := *post
	m.posts[post.ID] = &copied
	return nil
}

func (m *mockPostRepo) QueryDue(ctx context.Context, now time.Time) ([]*domain.ScheduledPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var due []*domain.ScheduledPost
	for _, post := range m.posts {
		if post.Due(now) {
			copied := *post
			due = append(due, &copied)
		}
	}
	return due, nil
}

func (m *mockPostRepo) MarkSent(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markCalls++
	if m.markErr != nil {
		return false, m.markErr
	}
	post, ok := m.posts[id]
	if !ok || post.Status != domain.PostPending {
		return false, nil
	}
	post.Status = domain.PostSent
	return true, nil
}

func (m *mockPostRepo) Close() error {
	return nil
}
