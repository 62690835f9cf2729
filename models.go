package main

import (
	"context"
	"database/sql"
	"time"

	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"

	"github.com/muhammadolammi/careerpilot/internal/cache"
	"github.com/muhammadolammi/careerpilot/internal/career"
	"github.com/muhammadolammi/careerpilot/internal/config"
	"github.com/muhammadolammi/careerpilot/internal/database"
	"github.com/muhammadolammi/careerpilot/internal/events"
	"github.com/muhammadolammi/careerpilot/internal/gateway"
	"github.com/muhammadolammi/careerpilot/internal/interview"
	"github.com/muhammadolammi/careerpilot/internal/logger"
	"github.com/muhammadolammi/careerpilot/internal/server"
	"github.com/muhammadolammi/careerpilot/internal/storage"
)

const appName = "careerpilot"

// App holds everything main wires together. Optional integrations stay nil
// when their configuration is absent.
type App struct {
	Config *config.Config
	Log    *logger.Logger

	AgentRunner         *runner.Runner
	AgentSessionService session.Service
	Generator           gateway.Generator

	DB        *database.Queries
	dbConn    *sql.DB
	Archive   *storage.Archive
	Publisher *events.AMQPPublisher
	Notifier  *events.Notifier
	Insights  *cache.Insights

	Career   *career.Service
	Sessions *interview.Registry
}

func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}
	ok := false
	defer func() {
		if !ok {
			app.Close()
		}
	}()

	assistant, err := GetAgent(ctx, cfg.GoogleAPIKey, appName, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}
	app.AgentSessionService = session.InMemoryService()
	app.AgentRunner, err = runner.New(runner.Config{
		AppName:        assistant.Name(),
		Agent:          assistant,
		SessionService: app.AgentSessionService,
	})
	if err != nil {
		return nil, err
	}

	var gen gateway.Generator = gateway.NewGemini(app.AgentRunner, app.AgentSessionService, assistant.Name(), log)
	if cfg.DBURL != "" {
		if app.dbConn, err = openDB(ctx, cfg.DBURL); err != nil {
			return nil, err
		}
		app.DB = database.New(app.dbConn)
		gen = gateway.NewRecorder(gen, app.DB, log)
		log.Info("generation audit enabled")
	}
	if cfg.OtelEnabled {
		gen = gateway.NewTraced(gen)
	}
	app.Generator = gen

	careerOpts := []career.Option{}
	if cfg.ResumeExtractor == config.ExtractorPDF {
		careerOpts = append(careerOpts, career.WithExtractor(career.PDFExtractor{}))
	}
	if cfg.R2 != nil {
		if app.Archive, err = storage.NewR2(ctx, cfg.R2); err != nil {
			return nil, err
		}
		careerOpts = append(careerOpts, career.WithArchive(app.Archive))
		log.Info("resume archive enabled", "bucket", cfg.R2.Bucket)
	}
	if cfg.RedisAddr != "" {
		if app.Insights, err = connectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.InsightsCacheTTL); err != nil {
			return nil, err
		}
		careerOpts = append(careerOpts, career.WithInsightsCache(app.Insights))
		log.Info("market insights cache enabled", "ttl", cfg.InsightsCacheTTL)
	}
	if app.Career, err = career.NewService(gen, log, careerOpts...); err != nil {
		return nil, err
	}

	if cfg.RabbitMQURL != "" {
		if app.Publisher, err = dialRabbit(cfg.RabbitMQURL); err != nil {
			return nil, err
		}
		app.Notifier = events.NewNotifier(app.Publisher, log)
		log.Info("session updates enabled", "exchange", events.Exchange)
	}

	collab := interview.NewCollaborator(gen)
	app.Sessions = interview.NewRegistry(app.newSession(collab), cfg.SessionTTL)

	ok = true
	return app, nil
}

func (a *App) newSession(collab interview.Collaborator) func(id string) *interview.Controller {
	return func(id string) *interview.Controller {
		ctrl := interview.NewController(id, collab, interview.WithLogger(a.Log))
		if a.Notifier != nil {
			ctrl.Subscribe(a.Notifier.Observe)
			go func() {
				<-ctrl.Done()
				a.Notifier.Forget(id)
			}()
		}
		return ctrl
	}
}

func (a *App) routerConfig() server.RouterConfig {
	cfg := server.RouterConfig{
		CareerHandler:    server.NewCareerHandler(a.Career),
		InterviewHandler: server.NewInterviewHandler(a.Sessions),
		StreamHandler:    server.NewStreamHandler(a.Sessions, a.Log),
		Log:              a.Log,
		AllowedOrigins:   a.Config.AllowedOrigins,
		Tracing:          a.Config.OtelEnabled,
		ServiceName:      appName,
	}
	if a.DB != nil {
		cfg.AuditHandler = server.NewAuditHandler(a.DB)
	}
	return cfg
}

// Close releases every connection that was opened. Safe on a partly built App.
func (a *App) Close() {
	if a.Sessions != nil {
		a.Sessions.CloseAll()
	}
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			a.Log.Warn("failed to close rabbitmq connection", "error", err)
		}
	}
	if a.Insights != nil {
		_ = a.Insights.Close()
	}
	if a.dbConn != nil {
		_ = a.dbConn.Close()
	}
}

const sweepInterval = time.Minute
