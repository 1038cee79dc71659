package handlers

import (
	"net/http"

	"bookcatalog/internal/logger"
	"bookcatalog/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerBookRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

// Reads are public; every mutating route passes the bearer-token gate first,
// then the id/payload validators, then the handler.
func (h *Handler) registerBookRoutes(r *gin.Engine) {
	books := r.Group("/books")
	{
		books.GET("/daftar", h.listBooks)
		books.GET("/detail/:id", h.validateBookID, h.getBook)

		protected := books.Group("", h.userIdMiddleware)
		{
			protected.POST("/tambah", h.validateNewBook, h.addBook)
			protected.PUT("/ubah/:id", h.validateBookID, h.validateBookUpdate, h.updateBook)
			protected.DELETE("/hapus/:id", h.validateBookID, h.deleteBook)
		}
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
