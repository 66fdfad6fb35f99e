// Package telegram wraps the Telegram Bot API client: a long-polling
// update stream plus the typed outbound calls the bot needs.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client is a thin wrapper over the Bot API
type Client struct {
	bot         *tgbotapi.BotAPI
	pollTimeout int

	onMessage    func(*Message)
	onNewMembers func(chatID int64, users []User)
}

// Message is one inbound chat message from the update stream
type Message struct {
	ChatID    int64
	MessageID int
	Sender    User
	Text      string
}

// User is a Telegram account
type User struct {
	ID        int64
	Username  string
	FirstName string
}

// Recipient addresses an outbound call: a chat by numeric ID or a channel
// by @username. Exactly one should be set.
type Recipient struct {
	ChatID  int64
	Channel string
}

// NewClient authenticates against the Bot API
func NewClient(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth failed: %w", err)
	}
	return &Client{
		bot:         bot,
		pollTimeout: 30,
	}, nil
}

// Self returns the bot's own identity
func (c *Client) Self() User {
	return User{
		ID:        c.bot.Self.ID,
		Username:  c.bot.Self.UserName,
		FirstName: c.bot.Self.FirstName,
	}
}

// OnMessage registers the inbound message handler
func (c *Client) OnMessage(handler func(*Message)) {
	c.onMessage = handler
}

// OnNewMembers registers the new-chat-members handler
func (c *Client) OnNewMembers(handler func(chatID int64, users []User)) {
	c.onNewMembers = handler
}

// Start runs the long-polling update loop until the context is cancelled
// or Stop is called. Blocking.
func (c *Client) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = c.pollTimeout
	updates := c.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			c.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			c.handleUpdate(update)
		}
	}
}

// Stop closes the update stream, unblocking Start
func (c *Client) Stop() {
	c.bot.StopReceivingUpdates()
}

func (c *Client) handleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	if len(msg.NewChatMembers) > 0 {
		if c.onNewMembers != nil {
			users := make([]User, 0, len(msg.NewChatMembers))
			for _, m := range msg.NewChatMembers {
				users = append(users, User{ID: m.ID, Username: m.UserName, FirstName: m.FirstName})
			}
			c.onNewMembers(msg.Chat.ID, users)
		}
		return
	}

	if msg.From == nil {
		return
	}
	if c.onMessage != nil {
		c.onMessage(&Message{
			ChatID:    msg.Chat.ID,
			MessageID: msg.MessageID,
			Sender:    User{ID: msg.From.ID, Username: msg.From.UserName, FirstName: msg.From.FirstName},
			Text:      msg.Text,
		})
	}
}

// GetChatAdministrators fetches the admin list of a chat
func (c *Client) GetChatAdministrators(ctx context.Context, chatID int64) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	members, err := c.bot.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return nil, fmt.Errorf("getChatAdministrators failed for chat %d: %w", chatID, err)
	}

	users := make([]User, 0, len(members))
	for _, m := range members {
		if m.User == nil {
			continue
		}
		users = append(users, User{ID: m.User.ID, Username: m.User.UserName, FirstName: m.User.FirstName})
	}
	return users, nil
}

// DeleteMessage removes a message from a chat
func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("deleteMessage failed for chat %d message %d: %w", chatID, messageID, err)
	}
	return nil
}

// SendMessage sends a text message. parseMode may be empty, "HTML" or
// "Markdown".
func (c *Client) SendMessage(ctx context.Context, to Recipient, text, parseMode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.MessageConfig{
		BaseChat:  c.baseChat(to),
		Text:      text,
		ParseMode: parseMode,
	}
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("sendMessage failed: %w", err)
	}
	return nil
}

// SendPhoto sends a photo by URL with a caption
func (c *Client) SendPhoto(ctx context.Context, to Recipient, imageURL, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	photo := tgbotapi.PhotoConfig{
		BaseFile: tgbotapi.BaseFile{
			BaseChat: c.baseChat(to),
			File:     tgbotapi.FileURL(imageURL),
		},
		Caption: caption,
	}
	if _, err := c.bot.Send(photo); err != nil {
		return fmt.Errorf("sendPhoto failed: %w", err)
	}
	return nil
}

// SendVideo sends a video by URL with a caption
func (c *Client) SendVideo(ctx context.Context, to Recipient, videoURL, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	video := tgbotapi.VideoConfig{
		BaseFile: tgbotapi.BaseFile{
			BaseChat: c.baseChat(to),
			File:     tgbotapi.FileURL(videoURL),
		},
		Caption: caption,
	}
	if _, err := c.bot.Send(video); err != nil {
		return fmt.Errorf("sendVideo failed: %w", err)
	}
	return nil
}

func (c *Client) baseChat(to Recipient) tgbotapi.BaseChat {
	return tgbotapi.BaseChat{
		ChatID:          to.ChatID,
		ChannelUsername: to.Channel,
	}
}

// IsPermissionDenied reports whether err is the Bot API telling us the bot
// lacks the rights for the attempted action, as opposed to a transport
// failure.
func IsPermissionDenied(err error) bool {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == 403 {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "not enough rights") || strings.Contains(msg, "can't be deleted")
}
