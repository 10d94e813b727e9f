package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/zhukovvlad/docfill-go/cmd/internal/config"
	"github.com/zhukovvlad/docfill-go/cmd/internal/history"
	"github.com/zhukovvlad/docfill-go/cmd/internal/services/auth"
	"github.com/zhukovvlad/docfill-go/cmd/internal/services/fill"
	"github.com/zhukovvlad/docfill-go/cmd/pkg/logging"
)

type Server struct {
	store       history.Store
	router      *gin.Engine
	logger      *logging.Logger
	authService *auth.Service
	fillService *fill.Service
	config      *config.Config
}

func NewServer(
	store history.Store,
	logger *logging.Logger,
	fillService *fill.Service,
	cfg *config.Config,
) *Server {
	authService := auth.NewService(store, cfg, logger)

	server := &Server{
		store:       store,
		logger:      logger,
		authService: authService,
		fillService: fillService,
		config:      cfg,
	}
	router := gin.Default()

	// Настройка CORS
	corsConfig := cors.DefaultConfig()
	if cfg.IsDebug != nil && *cfg.IsDebug {
		// В режиме отладки - локальные origins
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"}
	} else {
		// В production режиме - строгие настройки
		if len(cfg.CORS.AllowedOrigins) > 0 {
			corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
		} else {
			// В production CORS origins должны быть явно настроены
			logger.Warn("CORS allowed_origins not configured in production - using restrictive default")
			corsConfig.AllowOrigins = []string{}
		}
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	}
	corsConfig.ExposeHeaders = []string{"Content-Length", "Content-Disposition", "X-Fill-Stats"}
	router.Use(cors.New(corsConfig))

	router.GET("/home", server.HomeHandler)
	router.GET("/api/stats", server.getStatsHandler)

	// --- INTERNAL (доверенные воркеры) ---
	// Отдельная группа для server-to-server взаимодействия.
	// Здесь НЕ используется JWT. Только service-auth.
	// Rate limiting на случай компрометации API ключа.
	internal := router.Group("/internal/worker")
	internal.Use(ServiceBearerAuthMiddleware("docfill-worker"))
	internal.Use(ServiceRateLimitMiddleware(cfg.Worker.RateLimitRPS, cfg.Worker.RateLimitBurst))
	{
		internal.POST("/fill-document", server.fillDocumentHandler)
	}

	// --- API V1 ---
	v1 := router.Group("/api/v1")
	{
		// Публичный обмен client_id/client_secret на access token
		v1.POST("/auth/token", server.tokenHandler)

		// Приватные роуты (требуют client JWT)
		protected := v1.Group("/")
		protected.Use(AuthMiddleware(server.authService))
		{
			protected.POST("/fill-document", server.fillDocumentHandler)

			protected.GET("/history", server.listHistoryHandler)
			protected.GET("/history/:id", server.getHistoryRecordHandler)
		}
	}

	server.router = router
	return server
}

func (s *Server) Start(address string) error {
	return s.router.Run(address)
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}
