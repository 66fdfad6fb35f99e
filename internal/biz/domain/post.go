package domain

import "time"

// PostStatus is the delivery state of a scheduled post
type PostStatus string

const (
	PostPending PostStatus = "pending"
	PostSent    PostStatus = "sent"
)

// ScheduledPost is one queued channel post. Created by an external producer,
// transitioned pending -> sent exactly once by the dispatcher. A failed send
// leaves the post pending so a later tick retries it.
type ScheduledPost struct {
	ID          int64
	Text        string
	ImageURL    string
	VideoURL    string
	ScheduledAt time.Time
	Status      PostStatus
	CreatedAt   time.Time
	SentAt      time.Time
}

// Due reports whether the post should be delivered at the given time
func (p *ScheduledPost) Due(now time.Time) bool {
	return p.Status == PostPending && !p.ScheduledAt.After(now)
}

// Target identifies where an outbound message goes: a group chat by numeric
// ID, or a channel by @username.
type Target struct {
	ChatID  int64
	Channel string
}

// GroupTarget addresses a group chat by its numeric ID
func GroupTarget(chatID int64) Target {
	return Target{ChatID: chatID}
}

// ChannelTarget addresses a channel by @username
func ChannelTarget(username string) Target {
	return Target{Channel: username}
}
