package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
	"github.com/codewithmercy/community-bot/internal/biz/usecase"
	"github.com/codewithmercy/community-bot/internal/conf"
	"github.com/codewithmercy/community-bot/internal/data"
	"github.com/codewithmercy/community-bot/internal/logging"
	"github.com/codewithmercy/community-bot/internal/server"
	"github.com/codewithmercy/community-bot/internal/service"
	"github.com/codewithmercy/community-bot/telegram"
)

func main() {
	_ = godotenv.Load()

	cfg := conf.LoadFromEnv()
	log := logging.New(cfg.Log.Level, cfg.Log.Pretty)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	tg, err := telegram.NewClient(cfg.Telegram.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create telegram client")
	}
	bot := tg.Self()
	log.Info().Int64("bot_id", bot.ID).Str("bot_username", bot.Username).Msg("authenticated")

	posts, err := data.NewPostRepo(cfg.Store.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.Store.DBPath).Msg("failed to open post store")
	}
	defer posts.Close()

	chatAPI := data.NewChatAPI(tg)
	channel := parseChannel(cfg.Telegram.Channel)

	roles := usecase.NewRoleResolver(chatAPI, cfg.Telegram.OwnerID, log.With().Str("component", "roles").Logger())
	moderation := usecase.NewModerationUsecase(chatAPI, roles, bot.ID, cfg.Moderation.WarnDelay, log.With().Str("component", "moderation").Logger())
	welcome := usecase.NewWelcomeUsecase(chatAPI, log.With().Str("component", "welcome").Logger())
	dispatch := usecase.NewDispatchUsecase(posts, chatAPI, channel, log.With().Str("component", "dispatch").Logger())

	clock, err := newClock(cfg.Dispatch, dispatch, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create dispatch clock")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock.Start(ctx)
	defer clock.Stop()

	if cfg.Memes.Enabled() {
		memes := service.NewMemePoster(
			data.NewMemeFeed(cfg.Memes.APIKey),
			chatAPI, channel,
			cfg.Memes.InitialDelay, cfg.Memes.Interval,
			log.With().Str("component", "memes").Logger(),
		)
		memes.Start(ctx)
		defer memes.Stop()
	}

	if cfg.Challenges.Enabled() {
		challenges, err := service.NewChallengePoster(
			data.NewChallengeFeed(cfg.Challenges.APIKey),
			chatAPI, channel,
			cfg.Challenges.CronSpec, cfg.Challenges.SolutionDelay,
			log.With().Str("component", "challenges").Logger(),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create challenge poster")
		}
		challenges.Start(ctx)
		defer challenges.Stop()
	}

	health := server.NewHealthServer(cfg.Server.Port, log.With().Str("component", "health").Logger())
	health.Start()
	defer health.Stop()

	srv := server.NewTelegramServer(tg, moderation, welcome, log.With().Str("component", "server").Logger())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()
		srv.Stop()
	}()

	if err := srv.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("update loop failed")
	}
	log.Info().Msg("stopped")
}

func newClock(cfg conf.DispatchConfig, dispatch *usecase.DispatchUsecase, log zerolog.Logger) (*service.Clock, error) {
	clockLog := log.With().Str("component", "clock").Logger()
	if cfg.CronSpec != "" {
		return service.NewCronClock(cfg.CronSpec, dispatch.DispatchDue, clockLog)
	}
	return service.NewIntervalClock(cfg.Interval, dispatch.DispatchDue, clockLog), nil
}

// parseChannel turns the configured channel identifier into a target:
// "@username" for public channels, a numeric chat ID otherwise.
func parseChannel(channel string) domain.Target {
	if strings.HasPrefix(channel, "@") {
		return domain.ChannelTarget(channel)
	}
	if id, err := strconv.ParseInt(channel, 10, 64); err == nil {
		return domain.GroupTarget(id)
	}
	return domain.ChannelTarget(channel)
}
