package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"pulse-assistant/config"
	"pulse-assistant/internal/agent"
	"pulse-assistant/internal/agent/tools"
	tgDelivery "pulse-assistant/internal/chat/delivery/telegram"
	"pulse-assistant/internal/chat/repository/postgre"
	"pulse-assistant/internal/chat/usecase"
	"pulse-assistant/internal/httpserver"
	"pulse-assistant/internal/middleware"
	"pulse-assistant/internal/scheduler"
	"pulse-assistant/pkg/datemath"
	"pulse-assistant/pkg/fallback"
	"pulse-assistant/pkg/hfinference"
	"pulse-assistant/pkg/llmprovider"
	"pulse-assistant/pkg/log"
	"pulse-assistant/pkg/tavily"
	"pulse-assistant/pkg/telegram"
	"pulse-assistant/pkg/webdoc"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Pulse Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	if cfg.Telegram.BotToken == "" || cfg.LLM.APIKey == "" || cfg.Postgres.URL == "" {
		logger.Error(ctx, "BOT_TOKEN, GROQ_API_KEY and DATABASE_URL are required")
		return
	}

	// 3. Storage
	db, err := sql.Open("pgx", cfg.Postgres.URL)
	if err != nil {
		logger.Errorf(ctx, "Failed to open database: %v", err)
		return
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		logger.Errorf(ctx, "Database not reachable: %v", err)
		return
	}
	if err := postgre.InitSchema(ctx, db); err != nil {
		logger.Errorf(ctx, "Failed to init schema: %v", err)
		return
	}
	repo := postgre.New(db, logger)

	// 4. Chat completion chain
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize LLM providers: %v", err)
		return
	}
	managerCfg, err := llmprovider.ManagerConfigFrom(&cfg.LLM)
	if err != nil {
		logger.Errorf(ctx, "Invalid LLM config: %v", err)
		return
	}
	manager := llmprovider.NewManager(providers, managerCfg, logger)

	// 5. Timezone
	dateMathParser, dtErr := datemath.NewParser(cfg.Chat.Timezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Chat.Timezone, dtErr)
		dateMathParser, _ = datemath.NewParser("UTC")
	}
	location := dateMathParser.Location()

	// 6. Tools
	registry := agent.NewToolRegistry()
	registry.Register(tools.NewCurrentTimeTool(location))
	registry.Register(tools.NewCalculateMathTool())
	registry.Register(tools.NewAddReminderTool(repo, dateMathParser, logger))
	registry.Register(tools.NewSaveMemoryTool(repo, logger))
	registry.Register(tools.NewCheckCalendarTool(repo, location, logger))
	registry.Register(tools.NewCreateCalendarEventTool(repo, location, logger))

	retriever := webdoc.New(webdoc.Config{})
	registry.Register(tools.NewAnalyzeDocTool(retriever, logger))
	registry.Register(tools.NewSummarizeChannelTool(retriever, logger))

	if cfg.Search.TavilyAPIKey != "" {
		searchClient, sErr := tavily.New(tavily.Config{
			APIKey:     cfg.Search.TavilyAPIKey,
			MaxResults: cfg.Search.MaxResults,
		})
		if sErr != nil {
			logger.Warnf(ctx, "Web search not available (optional): %v", sErr)
		} else {
			registry.Register(tools.NewSearchWebTool(searchClient, logger))
		}
	} else {
		logger.Warn(ctx, "TAVILY_API_KEY not set, web search tool disabled")
	}

	dispatcher := agent.NewDispatcher(registry, logger)

	// 7. Image / voice inference
	if cfg.Image.HFToken == "" {
		logger.Error(ctx, "HF_TOKEN is required for image and voice generation")
		return
	}
	var inferenceHTTP *http.Client
	if d := parseDuration(ctx, logger, "image.timeout", cfg.Image.Timeout); d > 0 {
		inferenceHTTP = &http.Client{Timeout: d}
	}
	inference, err := hfinference.New(hfinference.Config{
		Token:      cfg.Image.HFToken,
		HTTPClient: inferenceHTTP,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize inference client: %v", err)
		return
	}

	// 8. Chat UseCase
	uc := usecase.New(logger, manager, inference, registry, dispatcher, repo, usecase.Config{
		HistoryWindow:     cfg.Chat.HistoryWindow,
		DefaultPersona:    cfg.Chat.DefaultPersona,
		Temperature:       cfg.LLM.Temperature,
		DefaultImageModel: cfg.Image.DefaultModel,
		VoiceModel:        cfg.Voice.Model,
		MediaFallback: fallback.Config{
			RetryAttempts: managerCfg.RetryAttempts,
			RetryDelay:    managerCfg.RetryDelay,
		},
	})

	// 9. Telegram delivery
	telegramBot := telegram.NewBot(cfg.Telegram.BotToken)

	chatModels := make([]string, 0, len(cfg.LLM.Models))
	for _, m := range cfg.LLM.Models {
		if m.Enabled {
			chatModels = append(chatModels, m.Model)
		}
	}
	telegramHandler := tgDelivery.New(logger, uc, telegramBot, tgDelivery.Config{
		AdminID:    cfg.Telegram.AdminID,
		ChatModels: chatModels,
	})

	// Webhook registration: explicit config, or ngrok auto-detect for dev.
	webhookURL := cfg.Telegram.WebhookURL
	if webhookURL == "" {
		ngrokURL, ngrokErr := detectNgrokURL(ctx, "http://ngrok:4040")
		if ngrokErr != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
		} else {
			webhookURL = ngrokURL + "/webhook/telegram"
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
	}
	if webhookURL != "" {
		if whErr := telegramBot.SetWebhook(webhookURL, cfg.Telegram.WebhookSecret); whErr != nil {
			logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
		} else {
			logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
		}
	}

	// 10. Reminder scheduler
	sched := scheduler.New(repo, tgDelivery.NewReminderSink(telegramBot), logger, scheduler.Config{
		Interval:    parseDuration(ctx, logger, "scheduler.interval", cfg.Scheduler.Interval),
		SinkTimeout: parseDuration(ctx, logger, "scheduler.sink_timeout", cfg.Scheduler.SinkTimeout),
	})
	go sched.Run(ctx)

	// 11. HTTP server
	mw := middleware.New(logger, middleware.Config{
		WebhookSecret:   cfg.Telegram.WebhookSecret,
		RateLimitPerMin: cfg.Chat.RateLimitPerMin,
	})
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		Middleware:      mw,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// parseDuration parses a config duration string, returning zero (the
// component's default) when empty or malformed.
func parseDuration(ctx context.Context, logger log.Logger, key, raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logger.Warnf(ctx, "Invalid %s %q, using default: %v", key, raw, err)
		return 0
	}
	return d
}
