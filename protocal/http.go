package protocal

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"skinlog-bot/configs"
	httpAdapter "skinlog-bot/internal/adapters/input/http"
	lineAdapter "skinlog-bot/internal/adapters/output/line"
	"skinlog-bot/internal/adapters/output/memory"
	"skinlog-bot/internal/adapters/output/postgres"
	"skinlog-bot/internal/adapters/output/sheets"
	"skinlog-bot/internal/application"
	"skinlog-bot/internal/domain"
	"skinlog-bot/internal/ports/output"
	"skinlog-bot/pkg/database_driver/gorm"
	"skinlog-bot/pkg/logger"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// rowStore is a row store that can report its health
type rowStore interface {
	output.RowStore
	output.Pinger
}

// ServeHTTP func
func ServeHTTP() error {
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	conf := configs.GetViper()

	logCloser := logger.Init(logger.Options{
		Level:      conf.Log.Level,
		Debug:      conf.App.Debug,
		Env:        conf.App.Env,
		File:       conf.Log.File,
		MaxSizeMB:  conf.Log.MaxSizeMB,
		MaxBackups: conf.Log.MaxBackups,
		MaxAgeDays: conf.Log.MaxAgeDays,
	})
	defer logCloser.Close()

	if err := conf.Validate(); err != nil {
		return err
	}
	logrus.Infof("Starting in env=%s with %s row store", conf.App.Env, conf.RowStore.Backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newRowStore(ctx, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	// Wire up the hexagonal architecture layers
	// Application services (use cases)
	names := application.NewNameCache(store, conf.Sheets.NamesSheetID, conf.Sheets.NamesRange, conf.NamesTTL(), nil)
	if _, err := names.Get(ctx, false); err != nil {
		logrus.Warnf("Skin names not loaded at startup, will retry on first search: %v", err)
	}
	trades := application.NewTradeLogService(store, conf.Sheets.LogSheetID, conf.Sheets.LogRange, domain.LoadLocation(conf.Bot.Timezone), nil)
	sessions := memory.NewMemorySessionStore(conf.SessionTimeout(), nil)
	conversation := application.NewTradeConversation(sessions, names, trades, application.ConversationConfig{
		Accounts:            conf.Bot.Accounts,
		PageSize:            conf.Bot.PageSize,
		RecentLimit:         conf.Bot.RecentLimit,
		ResetOnWriteFailure: conf.Bot.ResetOnWriteFailure,
	})

	// Output adapter (LINE client)
	lineClient, err := lineAdapter.NewLineClientAdapter(conf.Line.ChannelToken)
	if err != nil {
		return fmt.Errorf("failed to create LINE client: %w", err)
	}
	lineWebhookSrv := application.NewLineWebhookService(lineClient, conversation, conf.DedupeTTL())

	// Input adapters (HTTP handlers)
	hdl := httpAdapter.New(trades, store)
	lineWebhookHdl := httpAdapter.NewLineWebhookHandler(lineWebhookSrv, conf.Line.ChannelSecret)

	app := fiber.New(fiber.Config{DisableStartupMessage: !conf.App.Debug})
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))
	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)

	api := app.Group("/v1/api")
	{
		api.Get("/trades/last", hdl.GetLastLog)
		api.Get("/trades/statistics", hdl.GetStatistics)
		api.Get("/trades/recent", hdl.GetRecent)
	}

	// LINE webhook endpoint
	webhook := app.Group("/webhook")
	{
		webhook.Post("/line", lineWebhookHdl.HandleWebhook)
	}

	go func() {
		<-ctx.Done()
		logrus.Info("Gracefull shut down ...")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("Error when shutdown server: %v", err)
		}
	}()

	logrus.Println("Listerning on port: ", conf.App.Port)
	return app.Listen(":" + conf.App.Port)
}

// newRowStore connects the configured backend. The returned func releases it.
func newRowStore(ctx context.Context, conf *configs.Config) (rowStore, func(), error) {
	switch conf.RowStore.Backend {
	case configs.BackendPostgres:
		dbConGorm, err := gorm.ConnectToPostgreSQL(gorm.Options{
			Host:     conf.Postgres.Host,
			Port:     conf.Postgres.Port,
			Username: conf.Postgres.Username,
			Password: conf.Postgres.Password,
			Database: conf.Postgres.DbName,
			SSLMode:  conf.Postgres.SSLMode,
		})
		if err != nil {
			return nil, nil, err
		}
		store, err := postgres.NewRowStore(dbConGorm.Postgres)
		if err != nil {
			gorm.DisconnectPostgres(dbConGorm.Postgres)
			return nil, nil, err
		}
		return store, func() { gorm.DisconnectPostgres(dbConGorm.Postgres) }, nil

	default:
		store, err := sheets.NewRowStore(ctx, sheets.Credentials{
			File: conf.Sheets.CredentialsFile,
			JSON: conf.Sheets.CredentialsJSON,
		}, conf.Sheets.LogSheetID)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
