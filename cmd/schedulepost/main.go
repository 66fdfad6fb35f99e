// Command schedulepost enqueues a post into the scheduled post store.
// The bot's dispatcher picks it up on the next due tick.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
	"github.com/codewithmercy/community-bot/internal/data"
)

func main() {
	_ = godotenv.Load()

	var (
		text     = flag.String("text", "", "post body text")
		imageURL = flag.String("image", "", "image URL (sent as photo)")
		videoURL = flag.String("video", "", "video URL (sent as video)")
		at       = flag.String("at", "", "delivery time, RFC 3339 (e.g. 2026-09-01T18:00:00Z)")
		in       = flag.Duration("in", 0, "delivery delay from now (e.g. 90m), used when -at is empty")
		dbPath   = flag.String("db", "", "post database path (default: $POST_DB_PATH)")
	)
	flag.Parse()

	if *text == "" && *imageURL == "" && *videoURL == "" {
		fmt.Println("Error: at least one of -text, -image or -video is required")
		os.Exit(1)
	}
	if *imageURL != "" && *videoURL != "" {
		fmt.Println("Error: a post carries at most one of -image and -video")
		os.Exit(1)
	}

	scheduledAt := time.Now()
	switch {
	case *at != "":
		parsed, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			fmt.Printf("Error: invalid -at value: %v\n", err)
			os.Exit(1)
		}
		scheduledAt = parsed
	case *in > 0:
		scheduledAt = scheduledAt.Add(*in)
	}

	path := *dbPath
	if path == "" {
		path = os.Getenv("POST_DB_PATH")
	}
	if path == "" {
		homeDir, _ := os.UserHomeDir()
		path = filepath.Join(homeDir, ".community-bot", "posts.db")
	}

	posts, err := data.NewPostRepo(path)
	if err != nil {
		fmt.Printf("Error: failed to open post store: %v\n", err)
		os.Exit(1)
	}
	defer posts.Close()

	post := &domain.ScheduledPost{
		Text:        *text,
		ImageURL:    *imageURL,
		VideoURL:    *videoURL,
		ScheduledAt: scheduledAt,
	}
	if err := posts.Create(context.Background(), post); err != nil {
		fmt.Printf("Error: failed to schedule post: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Post %d scheduled for %s\n", post.ID, scheduledAt.Format(time.RFC3339))
}
