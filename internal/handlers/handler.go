package handlers

import (
	"net/http"
	"time"

	"bookshelf/internal/logger"
	"bookshelf/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultCookieName = "bookshelf_session"

// Options carry the HTTP-facing settings taken from configuration.
type Options struct {
	CookieName     string
	CookieSecure   bool
	SessionTTL     time.Duration
	AllowedOrigins []string
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
	origins  map[string]struct{}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.CookieName == "" {
		opts.CookieName = defaultCookieName
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	origins := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, o := range opts.AllowedOrigins {
		origins[o] = struct{}{}
	}
	return &Handler{services: services, log: log, opts: opts, origins: origins}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger, h.cors)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	api := router.Group("/api")
	h.registerPublicRoutes(api)
	h.registerProtectedRoutes(api)

	return router
}

func (h *Handler) registerPublicRoutes(api *gin.RouterGroup) {
	api.POST("/register", h.register)
	api.POST("/login", h.login)
	api.GET("/check_session", h.checkSession)
	api.GET("/leaderboard", h.getLeaderboard)
	api.GET("/leaderboard/ws", h.leaderboardStream)
}

func (h *Handler) registerProtectedRoutes(api *gin.RouterGroup) {
	protected := api.Group("", h.sessionMiddleware)
	{
		protected.POST("/logout", h.logout)
		h.registerBookRoutes(protected)
		protected.GET("/activity", h.getActivity)
	}
}

func (h *Handler) registerBookRoutes(api *gin.RouterGroup) {
	books := api.Group("/books")
	{
		books.GET("", h.listBooks)
		books.POST("", h.addBook)
		books.PUT("/:id", h.updateBook)
		books.DELETE("/:id", h.deleteBook)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
