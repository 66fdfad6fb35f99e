package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
	"github.com/codewithmercy/community-bot/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// postRepo implements the scheduled post store on SQLite
type postRepo struct {
	db *sql.DB
}

// NewPostRepo opens (and if needed creates) the scheduled post database
func NewPostRepo(dbPath string) (repo.PostRepo, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// a single connection serializes writers, sparing us SQLITE_BUSY
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS scheduled_posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			video_url TEXT NOT NULL DEFAULT '',
			scheduled_at INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at INTEGER NOT NULL,
			sent_at INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create scheduled_posts table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_posts_status_scheduled ON scheduled_posts(status, scheduled_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &postRepo{db: db}, nil
}

// Create persists a new pending post and assigns its ID
func (r *postRepo) Create(ctx context.Context, post *domain.ScheduledPost) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.Status = domain.PostPending

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO scheduled_posts (text, image_url, video_url, scheduled_at, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		post.Text,
		post.ImageURL,
		post.VideoURL,
		post.ScheduledAt.Unix(),
		string(post.Status),
		post.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	post.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read post id: %w", err)
	}
	return nil
}

// QueryDue returns all pending posts whose schedule time has passed
func (r *postRepo) QueryDue(ctx context.Context, now time.Time) ([]*domain.ScheduledPost, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, image_url, video_url, scheduled_at, status, created_at, sent_at
		FROM scheduled_posts
		WHERE status = ? AND scheduled_at <= ?
		ORDER BY scheduled_at ASC
	`, string(domain.PostPending), now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query due posts: %w", err)
	}
	defer rows.Close()

	var posts []*domain.ScheduledPost
	for rows.Next() {
		var post domain.ScheduledPost
		var status string
		var scheduledAt, createdAt, sentAt int64
		if err := rows.Scan(&post.ID, &post.Text, &post.ImageURL, &post.VideoURL, &scheduledAt, &status, &createdAt, &sentAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		post.Status = domain.PostStatus(status)
		post.ScheduledAt = time.Unix(scheduledAt, 0)
		post.CreatedAt = time.Unix(createdAt, 0)
		if sentAt > 0 {
			post.SentAt = time.Unix(sentAt, 0)
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

// MarkSent transitions a post pending -> sent. The UPDATE is conditioned on
// the current status, so only one of any number of racing callers observes
// a row change; the rest get false.
func (r *postRepo) MarkSent(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE scheduled_posts
		SET status = ?, sent_at = ?
		WHERE id = ? AND status = ?
	`, string(domain.PostSent), time.Now().Unix(), id, string(domain.PostPending))
	if err != nil {
		return false, fmt.Errorf("failed to mark post sent: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected == 1, nil
}

// Close closes the database connection
func (r *postRepo) Close() error {
	return r.db.Close()
}
