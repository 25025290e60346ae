package handlers

import (
	"personal_diary/internal/logger"
	"personal_diary/internal/service"
	"personal_diary/internal/storage"

	"github.com/gin-gonic/gin"
)

// maxMultipartMemory caps the in-memory portion of photo uploads (8 MB).
const maxMultipartMemory = 8 << 20

// Handler wires the HTTP layer to services, upload storage and logging.
type Handler struct {
	services *service.Service
	store    *storage.Storage
	log      *logger.Logger
}

// NewHandler constructs the HTTP handler with its dependencies.
func NewHandler(services *service.Service, store *storage.Storage, log *logger.Logger) *Handler {
	return &Handler{services: services, store: store, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = maxMultipartMemory
	router.SetHTMLTemplate(pageTemplates())

	// Every request resolves its session cookie into an identity first.
	router.Use(h.resolveSession)

	router.GET("/", h.home)
	router.POST("/signup", h.signUp)
	router.POST("/login", h.logIn)
	router.GET("/logout", h.logOut)

	h.registerEntryRoutes(router)
	h.registerAdminRoutes(router)

	return router
}

func (h *Handler) registerEntryRoutes(r *gin.Engine) {
	authed := r.Group("/", h.requireUser)
	{
		authed.GET("/entries", h.listEntries)
		authed.GET("/new", h.newEntry)
		authed.POST("/save", h.saveEntry)
		authed.GET("/view/:id", h.viewEntry)
		authed.GET("/edit/:id", h.editEntry)
		authed.POST("/update/:id", h.updateEntry)
		authed.GET("/delete/:id", h.deleteEntry)
		authed.GET("/uploads/:filename", h.serveUpload)
	}
}

func (h *Handler) registerAdminRoutes(r *gin.Engine) {
	admin := r.Group("/", h.requireAdmin)
	{
		admin.GET("/admin", h.adminHome)
		admin.GET("/admin_login/:id", h.impersonate)
	}
}
