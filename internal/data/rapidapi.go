package data

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
	"github.com/codewithmercy/community-bot/internal/biz/repo"
)

const (
	memeFeedURL       = "https://programming-memes-images.p.rapidapi.com/v1/memes"
	memeFeedHost      = "programming-memes-images.p.rapidapi.com"
	challengeFeedURL  = "https://programming-challenges.p.rapidapi.com/api/ziza/programming-challenges/get/single/1"
	challengeFeedHost = "programming-challenges.p.rapidapi.com"
)

// memeFeed fetches random meme images from the RapidAPI meme endpoint
type memeFeed struct {
	apiKey string
	client *http.Client
}

// NewMemeFeed creates the RapidAPI meme feed
func NewMemeFeed(apiKey string) repo.MemeFeed {
	return &memeFeed{
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *memeFeed) FetchRandomMeme(ctx context.Context) (string, error) {
	var memes []struct {
		ID    int64  `json:"id"`
		Image string `json:"image"`
	}
	if err := f.get(ctx, memeFeedURL, memeFeedHost, &memes); err != nil {
		return "", err
	}
	if len(memes) == 0 {
		return "", fmt.Errorf("meme feed returned an empty list")
	}

	pick := memes[rand.Intn(len(memes))]
	if pick.Image == "" {
		return "", fmt.Errorf("meme feed entry has no image url")
	}
	return pick.Image, nil
}

func (f *memeFeed) get(ctx context.Context, url, host string, out any) error {
	return rapidGet(ctx, f.client, f.apiKey, url, host, out)
}

// challengeFeed fetches programming challenges from the RapidAPI endpoint
type challengeFeed struct {
	apiKey string
	client *http.Client
}

// NewChallengeFeed creates the RapidAPI challenge feed
func NewChallengeFeed(apiKey string) repo.ChallengeFeed {
	return &challengeFeed{
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *challengeFeed) FetchChallenge(ctx context.Context) (*domain.Challenge, error) {
	// wire shape of the feed, mapped to the domain type below
	var payload struct {
		Challenge   string `json:"Challenge"`
		Description string `json:"description"`
		Difficulty  string `json:"difficulty"`
		TestCases   []struct {
			Input  string `json:"input"`
			Output string `json:"output"`
		} `json:"testCases"`
		Solution []map[string]string `json:"solution"`
	}
	if err := rapidGet(ctx, f.client, f.apiKey, challengeFeedURL, challengeFeedHost, &payload); err != nil {
		return nil, err
	}
	if payload.Challenge == "" {
		return nil, fmt.Errorf("challenge feed returned an empty challenge")
	}

	challenge := &domain.Challenge{
		Title:       payload.Challenge,
		Description: payload.Description,
		Difficulty:  payload.Difficulty,
		Solutions:   make(map[string]string),
	}
	for _, tc := range payload.TestCases {
		challenge.TestCases = append(challenge.TestCases, domain.TestCase{Input: tc.Input, Output: tc.Output})
	}
	for _, sol := range payload.Solution {
		for lang, src := range sol {
			challenge.Solutions[lang] = src
		}
	}
	return challenge, nil
}

func rapidGet(ctx context.Context, client *http.Client, apiKey, url, host string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", apiKey)
	req.Header.Set("x-rapidapi-host", host)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode feed response: %w", err)
	}
	return nil
}
