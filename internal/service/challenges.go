package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
	"github.com/codewithmercy/community-bot/internal/biz/repo"
)

// ChallengePoster posts a programming challenge to the channel on a cron
// schedule, then posts its solution after a configured delay. The solution
// is an explicit scheduled continuation carrying the already-fetched
// challenge, not a second feed call.
type ChallengePoster struct {
	feed    repo.ChallengeFeed
	chat    repo.ChatAPI
	channel domain.Target

	cronSpec      string
	solutionDelay time.Duration
	log           zerolog.Logger

	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewChallengePoster creates the challenge poster
func NewChallengePoster(feed repo.ChallengeFeed, chat repo.ChatAPI, channel domain.Target, cronSpec string, solutionDelay time.Duration, log zerolog.Logger) (*ChallengePoster, error) {
	if _, err := cron.ParseStandard(cronSpec); err != nil {
		return nil, fmt.Errorf("invalid challenge cron spec %q: %w", cronSpec, err)
	}
	return &ChallengePoster{
		feed:          feed,
		chat:          chat,
		channel:       channel,
		cronSpec:      cronSpec,
		solutionDelay: solutionDelay,
		log:           log,
	}, nil
}

// Start posts one challenge immediately, then follows the cron schedule
func (p *ChallengePoster) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.cron = cron.New()
	_, _ = p.cron.AddFunc(p.cronSpec, p.postChallenge)
	p.cron.Start()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.postChallenge()
	}()

	p.log.Info().Str("cron", p.cronSpec).Msg("challenge poster started")
}

// Stop stops the schedule and abandons any pending solution post
func (p *ChallengePoster) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	if p.cron != nil {
		<-p.cron.Stop().Done()
	}
	p.wg.Wait()
}

func (p *ChallengePoster) postChallenge() {
	challenge, err := p.feed.FetchChallenge(p.ctx)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to fetch challenge")
		return
	}

	if err := p.chat.SendMessage(p.ctx, p.channel, formatChallenge(challenge, p.solutionDelay), repo.ParseMarkdown); err != nil {
		p.log.Error().Err(err).Msg("failed to post challenge")
		return
	}
	p.log.Info().Str("title", challenge.Title).Msg("challenge posted to channel")

	p.wg.Add(1)
	go p.postSolutionLater(challenge)
}

func (p *ChallengePoster) postSolutionLater(challenge *domain.Challenge) {
	defer p.wg.Done()

	select {
	case <-p.ctx.Done():
		return
	case <-time.After(p.solutionDelay):
	}

	if err := p.chat.SendMessage(p.ctx, p.channel, formatSolution(challenge), repo.ParseMarkdown); err != nil {
		p.log.Error().Err(err).Str("title", challenge.Title).Msg("failed to post solution")
		return
	}
	p.log.Info().Str("title", challenge.Title).Msg("solution posted to channel")
}

func formatChallenge(c *domain.Challenge, solutionDelay time.Duration) string {
	tc := c.FirstTestCase()
	return fmt.Sprintf(
		"🤖 *Programming Challenge* 🤖\n\n"+
			"📌 *Challenge:* %s\n"+
			"📖 *Description:* %s\n"+
			"⚡ *Difficulty:* %s\n\n"+
			"📝 *Example Input:* `%s`\n"+
			"❓ *Find the solution!*\n\n"+
			"⏳ The answer will be posted in %s!",
		c.Title, c.Description, c.Difficulty, tc.Input, formatDelay(solutionDelay),
	)
}

func formatSolution(c *domain.Challenge) string {
	tc := c.FirstTestCase()
	solution := c.Solution("javascript")
	if solution == "" {
		solution = "Solution not available"
	}
	return fmt.Sprintf(
		"✅ *Solution for:* %s\n\n"+
			"📝 *Example Input:* `%s`\n"+
			"🔹 *Expected Output:* `%s`\n\n"+
			"💻 *Solution:*\n```\n%s\n```",
		c.Title, tc.Input, tc.Output, solution,
	)
}

func formatDelay(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.String()
}
