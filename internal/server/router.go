package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/muhammadolammi/careerpilot/internal/logger"
)

type RouterConfig struct {
	CareerHandler    *CareerHandler
	InterviewHandler *InterviewHandler
	StreamHandler    *StreamHandler
	AuditHandler     *AuditHandler

	Log            *logger.Logger
	AllowedOrigins []string
	Tracing        bool
	ServiceName    string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 12 << 20
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(RequestID())
	if cfg.Log != nil {
		r.Use(RequestLogger(cfg.Log))
	}
	r.Use(CORS(cfg.AllowedOrigins))

	r.GET("/healthcheck", HealthCheck)

	api := r.Group("/api")
	{
		if cfg.CareerHandler != nil {
			api.GET("/options", cfg.CareerHandler.Options)
			api.POST("/guidance", cfg.CareerHandler.Guidance)
			api.POST("/resume/analyze", cfg.CareerHandler.AnalyzeResume)
			api.POST("/learning-path", cfg.CareerHandler.LearningPath)
			api.POST("/learning-path/channels", cfg.CareerHandler.Channels)
			api.GET("/market-insights", cfg.CareerHandler.MarketInsights)
			api.POST("/networking", cfg.CareerHandler.Networking)
		}

		if cfg.InterviewHandler != nil {
			api.POST("/interviews", cfg.InterviewHandler.Create)
			api.GET("/interviews/:id", cfg.InterviewHandler.Get)
			api.POST("/interviews/:id/start", cfg.InterviewHandler.Start)
			api.PUT("/interviews/:id/draft", cfg.InterviewHandler.Draft)
			api.POST("/interviews/:id/next", cfg.InterviewHandler.Next)
			api.POST("/interviews/:id/skip", cfg.InterviewHandler.Skip)
			api.POST("/interviews/:id/reset", cfg.InterviewHandler.Reset)
			api.DELETE("/interviews/:id", cfg.InterviewHandler.Delete)
		}
		if cfg.StreamHandler != nil {
			api.GET("/interviews/:id/ws", cfg.StreamHandler.Stream)
		}

		if cfg.AuditHandler != nil {
			api.GET("/generations", cfg.AuditHandler.Recent)
		}
	}

	return r
}
