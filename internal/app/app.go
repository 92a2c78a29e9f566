package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/ai"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/chain"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/config"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/handlers"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/metrics"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/rewards"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/store"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/util"
)

func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return err
	}
	util.SetLocation(loc)

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logrus.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	if _, err := handlers.EnsureDefaultUser(ctx, s); err != nil {
		return fmt.Errorf("default user: %w", err)
	}

	r := NewRouter(cfg, s)

	stopBackfill, err := rewards.StartScheduler(ctx, s, cfg.BackfillSchedule)
	if err != nil {
		return err
	}
	if stopBackfill != nil {
		defer stopBackfill()
	}

	logrus.Infof("listening on :%s (storage=%s)", cfg.Port, cfg.StorageBackend)
	return r.Run(":" + cfg.Port)
}

// NewRouter wires the model clients, the claim settler and the routes over s.
func NewRouter(cfg *config.Config, s store.Store) *gin.Engine {
	claude := ai.NewAnthropic(ai.AnthropicConfig{
		APIKey:  cfg.AnthropicAPIKey,
		BaseURL: cfg.AnthropicBaseURL,
		Model:   cfg.AnthropicModel,
		Timeout: cfg.AITimeout,
	})
	openai := ai.NewOpenAI(ai.OpenAIConfig{
		APIKey:     cfg.OpenAIAPIKey,
		BaseURL:    cfg.OpenAIBaseURL,
		ChatModel:  cfg.OpenAIChatModel,
		ImageModel: cfg.OpenAIImageModel,
		Timeout:    cfg.AITimeout,
	})
	if !claude.Configured() {
		logrus.Warn("ANTHROPIC_API_KEY not set; dream analysis and insights are disabled")
	}
	if !openai.Configured() {
		logrus.Warn("OPENAI_API_KEY not set; NFT generation is disabled")
	}

	h := handlers.New(s,
		ai.NewAnalyzer(claude),
		ai.NewNFTGenerator(openai, openai),
		ai.NewInsights(claude),
		chain.NewSimulated(cfg.ExplorerTxURL),
	)

	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(), metrics.Middleware())
	h.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	return r
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.StorageBackend == config.BackendMemory {
		logrus.Warn("using in-memory storage; data is lost on restart")
		return store.NewMemory(), nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	g := store.NewGorm(db)
	if err := g.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return g, nil
}
