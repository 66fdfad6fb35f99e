package domain

// Message represents one inbound chat message as delivered by Telegram.
// Immutable once received; consumed exactly once by the moderation pipeline.
type Message struct {
	ChatID    int64
	MessageID int
	Sender    User
	Text      string
}

// IsFromBot checks if the message was sent by the bot itself
func (m *Message) IsFromBot(botID int64) bool {
	return m.Sender.ID == botID
}

// User represents a Telegram account
type User struct {
	ID        int64
	Username  string
	FirstName string
}

// DisplayName returns the username, falling back to the first name
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}
