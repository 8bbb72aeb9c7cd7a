// Package server assembles the HTTP surface: REST under /api, the websocket
// gateway, health and metrics.
package server

import (
	"context"
	"net/http"
	"time"

	"luxurystay/internal/config"
	"luxurystay/internal/metrics"
	"luxurystay/internal/middleware"
	"luxurystay/internal/modules/auth"
	"luxurystay/internal/modules/booking"
	"luxurystay/internal/modules/chat"
	"luxurystay/internal/modules/housekeeping"
	"luxurystay/internal/modules/inquiry"
	"luxurystay/internal/modules/notification"
	"luxurystay/internal/modules/room"
	"luxurystay/internal/pkg/jwt"
	"luxurystay/internal/pkg/response"
	"luxurystay/internal/realtime"
	"luxurystay/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	JWT      *jwt.Service
	Registry *realtime.Registry
	Notifier *realtime.Dispatcher
	// Messages overrides the gorm message store, e.g. with MongoDB.
	Messages chat.MessageRepository
}

type Server struct {
	Router  *gin.Engine
	Gateway *chat.Gateway
}

func New(d Deps) *Server {
	userRepo := repository.NewUserRepository(d.DB)
	roomRepo := repository.NewRoomRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	taskRepo := repository.NewTaskRepository(d.DB)

	var messages chat.MessageRepository = repository.NewChatRepository(d.DB)
	if d.Messages != nil {
		messages = d.Messages
	}

	authHandler := auth.NewHandler(auth.NewService(userRepo, d.JWT))
	roomHandler := room.NewHandler(room.NewService(roomRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, roomRepo, taskRepo, userRepo, d.Notifier))
	taskHandler := housekeeping.NewHandler(housekeeping.NewService(taskRepo, roomRepo, userRepo, d.Notifier))
	chatService := chat.NewService(messages, userRepo, d.Notifier)
	chatHandler := chat.NewHandler(chatService)
	notificationHandler := notification.NewHandler(d.Notifier)
	inquiryHandler := inquiry.NewHandler(inquiry.NewService(repository.NewInquiryRepository(d.DB), d.Notifier))

	gateway := chat.NewGateway(d.JWT, d.Registry, chatService, chat.GatewayConfig{
		CheckOrigin: middleware.CheckOrigin(d.Config.CORSOrigins),
		SendRate:    d.Config.WSSendRate,
		SendBurst:   d.Config.WSSendBurst,
	})

	r := gin.New()
	r.Use(middleware.ErrorLogger())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{SkipPaths: []string{"/ws", "/health", "/metrics"}}))
	r.Use(middleware.CORS(d.Config.CORSOrigins))

	r.GET("/health", health(d))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	gateway.RegisterRoutes(r)

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)
		roomHandler.RegisterPublicRoutes(api)
		inquiryHandler.RegisterPublicRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(d.JWT))
		{
			authHandler.RegisterProtectedRoutes(protected)
			roomHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			taskHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			inquiryHandler.RegisterRoutes(protected)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return &Server{Router: r, Gateway: gateway}
}

func health(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if sqlDB, err := d.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "unavailable"
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":      dbStatus,
			"database":    dbStatus,
			"connections": d.Registry.Count(),
		})
	}
}
