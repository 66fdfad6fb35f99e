package server

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
	"github.com/codewithmercy/community-bot/internal/biz/usecase"
	"github.com/codewithmercy/community-bot/telegram"
)

// TelegramServer pumps updates from the Telegram client into the
// moderation and welcome handlers. Each message becomes its own unit of
// work: handlers for different messages run concurrently and a slow remote
// call blocks only its own message.
type TelegramServer struct {
	client     *telegram.Client
	moderation *usecase.ModerationUsecase
	welcome    *usecase.WelcomeUsecase
	log        zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTelegramServer creates the update pump
func NewTelegramServer(client *telegram.Client, moderation *usecase.ModerationUsecase, welcome *usecase.WelcomeUsecase, log zerolog.Logger) *TelegramServer {
	return &TelegramServer{
		client:     client,
		moderation: moderation,
		welcome:    welcome,
		log:        log,
	}
}

// Start registers the handlers and runs the update loop. Blocking.
func (s *TelegramServer) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.client.OnMessage(s.handleMessage)
	s.client.OnNewMembers(s.handleNewMembers)

	s.log.Info().Msg("listening for updates")
	return s.client.Start(s.ctx)
}

// Stop stops accepting updates and waits for in-flight handlers
func (s *TelegramServer) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.client.Stop()
	s.wg.Wait()
}

func (s *TelegramServer) handleMessage(msg *telegram.Message) {
	m := &domain.Message{
		ChatID:    msg.ChatID,
		MessageID: msg.MessageID,
		Sender: domain.User{
			ID:        msg.Sender.ID,
			Username:  msg.Sender.Username,
			FirstName: msg.Sender.FirstName,
		},
		Text: msg.Text,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.moderation.Handle(s.ctx, m)
	}()
}

func (s *TelegramServer) handleNewMembers(chatID int64, users []telegram.User) {
	joined := make([]domain.User, 0, len(users))
	for _, u := range users {
		joined = append(joined, domain.User{ID: u.ID, Username: u.Username, FirstName: u.FirstName})
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.welcome.Greet(s.ctx, chatID, joined)
	}()
}
