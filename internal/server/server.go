package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"trainslot/internal/auth"
	"trainslot/internal/booking"
	"trainslot/internal/config"
	"trainslot/internal/gym"
	"trainslot/internal/locker"
	"trainslot/internal/schedule"
	"trainslot/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, locks locker.Locker) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userService := user.NewService(user.NewRepository(db), cfg.JWTSecret)
	gymService := gym.NewService(gym.NewRepository(db))

	scheduleRepo := schedule.NewRepository(db)
	scheduleService := schedule.NewService(scheduleRepo, locks, cfg.LockWait)
	bookingService := booking.NewService(booking.NewRepository(db), scheduleRepo, locks, cfg.LockWait)

	userHandler := user.NewHandler(userService)
	gymHandler := gym.NewHandler(gymService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	bookingHandler := booking.NewHandler(bookingService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/gyms", gymHandler.ListGyms)
		protected.GET("/gyms/:gymID", gymHandler.GetGym)

		protected.GET("/schedules", scheduleHandler.ListSlots)
		protected.GET("/schedules/my", auth.RequireRole(user.RoleTrainer), scheduleHandler.ListMySlots)
		protected.GET("/schedules/:scheduleID", scheduleHandler.GetSlot)
		protected.POST("/schedules", auth.RequireRole(user.RoleTrainer), scheduleHandler.CreateSlot)

		protected.POST("/schedules/:scheduleID/book", auth.RequireRole(user.RoleClient), bookingHandler.BookSlot)
		protected.GET("/bookings", auth.RequireRole(user.RoleClient), bookingHandler.ListMyBookings)
		protected.POST("/bookings/:bookingID/cancel", auth.RequireRole(user.RoleClient), bookingHandler.CancelBooking)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(user.RoleAdmin))
	{
		admin.POST("/gyms", gymHandler.CreateGym)
		admin.POST("/trainers", userHandler.RegisterTrainer)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
