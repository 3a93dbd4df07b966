package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"imacms/api/internal/config"
	"imacms/api/internal/middleware"
	"imacms/api/internal/models"
	"imacms/api/internal/repository"
	"imacms/api/internal/service"
	"imacms/api/internal/storage"
	"imacms/api/internal/store"
)

// Collections groups one document collection per resource type.
type Collections struct {
	Pages       store.Collection[models.Page]
	Portfolio   store.Collection[models.PortfolioItem]
	SocialLinks store.Collection[models.SocialLink]
	Content     store.Collection[models.ContentBlock]
	Navigation  store.Collection[models.NavItem]
	Messages    store.Collection[models.Message]
	Leads       store.Collection[models.Lead]
	Settings    store.Collection[models.Settings]
	Uploads     store.Collection[models.Upload]
}

func NewPostgresCollections(pool *pgxpool.Pool) Collections {
	return Collections{
		Pages:       store.NewPostgresCollection[models.Page](pool, "pages"),
		Portfolio:   store.NewPostgresCollection[models.PortfolioItem](pool, "portfolio"),
		SocialLinks: store.NewPostgresCollection[models.SocialLink](pool, "social_links"),
		Content:     store.NewPostgresCollection[models.ContentBlock](pool, "content"),
		Navigation:  store.NewPostgresCollection[models.NavItem](pool, "navigation"),
		Messages:    store.NewPostgresCollection[models.Message](pool, "messages"),
		Leads:       store.NewPostgresCollection[models.Lead](pool, "leads"),
		Settings:    store.NewPostgresCollection[models.Settings](pool, "settings"),
		Uploads:     store.NewPostgresCollection[models.Upload](pool, "uploads"),
	}
}

func NewMemoryCollections() Collections {
	return Collections{
		Pages:       store.NewMemoryCollection[models.Page](),
		Portfolio:   store.NewMemoryCollection[models.PortfolioItem](),
		SocialLinks: store.NewMemoryCollection[models.SocialLink](),
		Content:     store.NewMemoryCollection[models.ContentBlock](),
		Navigation:  store.NewMemoryCollection[models.NavItem](),
		Messages:    store.NewMemoryCollection[models.Message](),
		Leads:       store.NewMemoryCollection[models.Lead](),
		Settings:    store.NewMemoryCollection[models.Settings](),
		Uploads:     store.NewMemoryCollection[models.Upload](),
	}
}

type HandlerSet struct {
	log             zerolog.Logger
	cfg             *config.AppConfig
	db              *pgxpool.Pool
	cache           *redis.Client
	cols            Collections
	authService     *service.AuthService
	messageService  *service.MessageService
	settingsService *service.SettingsService
	seedService     *service.SeedService
	mediaService    *service.MediaService
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, objects *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	return NewHandlerSetWith(log, cfg, repository.NewUserRepository(db), NewPostgresCollections(db), db, cache, objects)
}

// NewHandlerSetWith assembles a handler set from explicit dependencies; tests
// pass memory collections and leave db, cache, and objects nil.
func NewHandlerSetWith(
	log zerolog.Logger,
	cfg *config.AppConfig,
	users service.UserStore,
	cols Collections,
	db *pgxpool.Pool,
	cache *redis.Client,
	objects *storage.ObjectStore,
) HandlerSet {
	h := HandlerSet{
		log:             log,
		cfg:             cfg,
		db:              db,
		cache:           cache,
		cols:            cols,
		authService:     service.NewAuthService(users, cfg, log),
		messageService:  service.NewMessageService(cols.Messages, cols.Leads, log),
		settingsService: service.NewSettingsService(cols.Settings),
		seedService:     service.NewSeedService(cols.Content, cols.Navigation, cols.SocialLinks, cols.Portfolio, cols.Settings, cache, log),
	}
	if objects != nil {
		h.mediaService = service.NewMediaService(cols.Uploads, objects, cfg, log)
	}
	return h
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	authed := middleware.Auth(h.authService)

	auth := router.Group("/auth")
	auth.POST("/register", h.RegisterUser)
	auth.POST("/login", h.Login)
	auth.GET("/me", authed, h.Me)

	pages := router.Group("/pages")
	pages.GET("", h.ListPages)
	pages.GET("/:slug", h.GetPage)
	pages.POST("", authed, h.CreatePage)
	pages.PUT("/:id", authed, h.UpdatePage)
	pages.DELETE("/:id", authed, h.DeletePage)

	portfolio := router.Group("/portfolio")
	portfolio.GET("", h.ListPortfolio)
	portfolio.GET("/:id", h.GetPortfolioItem)
	portfolio.POST("", authed, h.CreatePortfolioItem)
	portfolio.PUT("/:id", authed, h.UpdatePortfolioItem)
	portfolio.DELETE("/:id", authed, h.DeletePortfolioItem)

	social := router.Group("/social-links")
	social.GET("", h.ListSocialLinks)
	social.POST("", authed, h.CreateSocialLink)
	social.PUT("/:id", authed, h.UpdateSocialLink)
	social.DELETE("/:id", authed, h.DeleteSocialLink)

	content := router.Group("/content")
	content.GET("", h.ListContentBlocks)
	content.GET("/:key", h.GetContentBlock)
	content.POST("", authed, h.CreateContentBlock)
	content.PUT("/:key", authed, h.UpdateContentBlock)

	navigation := router.Group("/navigation")
	navigation.GET("", h.ListNavItems)
	navigation.POST("", authed, h.CreateNavItem)
	navigation.PUT("/:id", authed, h.UpdateNavItem)
	navigation.DELETE("/:id", authed, h.DeleteNavItem)

	messages := router.Group("/messages")
	messages.GET("", authed, h.ListMessages)
	messages.POST("", h.CreateMessage)
	messages.PUT("/:id/read", authed, h.MarkMessageRead)
	messages.DELETE("/:id", authed, h.DeleteMessage)

	router.GET("/leads", authed, h.ListLeads)

	router.GET("/settings", h.GetSettings)
	router.PUT("/settings", authed, h.UpdateSettings)

	router.GET("/stats", authed, h.Stats)
	router.POST("/seed", h.Seed)

	router.POST("/media/upload", authed, h.UploadMedia)
}

// boolQuery parses a boolean query parameter, falling back on absence or
// garbage.
func boolQuery(c *gin.Context, name string, fallback bool) bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

// notFound translates store.ErrNotFound into a 404 with the given message
// and everything else into a 500.
func (h HandlerSet) notFound(c *gin.Context, err error, message string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": message})
		return
	}
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("store operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func (h HandlerSet) internalError(c *gin.Context, err error) {
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
