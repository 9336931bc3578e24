package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"

	"institute-events/config"
	"institute-events/handlers"
	"institute-events/internal/export"
	"institute-events/internal/i18n"
	"institute-events/internal/kv"
	"institute-events/internal/messaging"
	"institute-events/internal/notify"
	"institute-events/internal/store"
	"institute-events/internal/viewcache"
	_ "institute-events/migrations"
	"institute-events/monitoring"
	"institute-events/security"
	"institute-events/services"
	"institute-events/utils"
)

const monitorInterval = 30 * time.Second

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis; the connection is checked when the server starts
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPoolSize)
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	translator := i18n.NewTranslator(cfg.DefaultLocale)
	notifier := notify.NewFromConfig(cfg)
	views := viewcache.New(redisClient, cfg.ViewCacheTTL)
	prefs := kv.NewRedisStore(redisClient)

	// Initialize stores
	eventStore := store.NewEventStore(app)
	ticketStore := store.NewTicketStore(app)
	staffStore := store.NewStaffStore(app)
	profileStore := store.NewProfileStore(app)
	authStore := store.NewAuthStore(app)

	// Initialize services
	eventService := services.NewEventService(eventStore, views, notifier)
	ticketService := services.NewTicketService(ticketStore, eventStore, views, notifier)
	staffService := services.NewStaffService(staffStore, views, notifier)
	profileService := services.NewProfileService(profileStore)
	authService := services.NewAuthService(authStore, profileStore)
	messageService := services.NewMessageService(cfg.DefaultCountryCode, cfg.MessageFallbackName, messaging.NewTemplateStore(prefs))
	exportService := services.NewExportService(eventStore, export.NewSettingsStore(prefs))

	// Initialize handlers
	respond := handlers.NewResponder(translator)
	pages := handlers.NewPages(cfg.InstituteName)
	auth := handlers.NewAuth(respond, cfg.AuthCookieName, cfg.SecureAuthCookie, profileService)
	routes := &routes{
		cfg:      cfg,
		redis:    redisClient,
		auth:     auth,
		limiter:  security.NewRateLimiter(redisClient, translator, cfg.LoginRateLimit, cfg.LoginRateWindow),
		authH:    handlers.NewAuthHandler(auth, pages, authService),
		public:   handlers.NewPublicHandler(respond, pages, eventService),
		events:   handlers.NewEventHandler(respond, eventService),
		tickets:  handlers.NewTicketHandler(respond, ticketService),
		staff:    handlers.NewStaffHandler(respond, staffService, profileService),
		messages: handlers.NewMessageHandler(respond, messageService),
		exports:  handlers.NewExportHandler(respond, exportService),
	}

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// CLI commands
	app.RootCmd.AddCommand(newBulkLinksCommand(cfg))
	app.RootCmd.AddCommand(newExportCommand(app))

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := utils.RedisHealthCheck(ctx, redisClient); err != nil {
			return fmt.Errorf("connect to redis at %s: %w", redisClient.Options().Addr, err)
		}
		log.Println("Successfully connected to Redis")

		// Start background tasks
		if cfg.EnableMetrics {
			go monitoring.NewMonitor(redisClient, monitorInterval).Run(ctx)
		}

		routes.register(se)
		log.Println("Server routes registered")
		return se.Next()
	})

	setupEventHooks(app, eventService)

	// Start server
	return app.Start()
}

// setupEventHooks keeps cached views in step with event writes made through
// the record API (including the admin UI). Dashboard actions invalidate on
// their own.
func setupEventHooks(app *pocketbase.PocketBase, events *services.EventService) {
	changed := func(action string) func(e *core.RecordRequestEvent) error {
		return func(e *core.RecordRequestEvent) error {
			if err := e.Next(); err != nil {
				return err
			}
			events.Changed(e.Request.Context(), action, e.Record.Id)
			slog.Info("event changed via record api", "id", e.Record.Id, "action", action)
			return nil
		}
	}

	app.OnRecordCreateRequest(store.CollectionEvents).BindFunc(changed("create"))
	app.OnRecordUpdateRequest(store.CollectionEvents).BindFunc(changed("update"))
	app.OnRecordDeleteRequest(store.CollectionEvents).BindFunc(changed("delete"))
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
