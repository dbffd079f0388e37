package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"campaignhub/api/internal/config"
	"campaignhub/api/internal/middleware"
	"campaignhub/api/internal/models"
	"campaignhub/api/internal/repository"
	"campaignhub/api/internal/security"
	"campaignhub/api/internal/service"
	"campaignhub/api/internal/storage"
)

type HandlerSet struct {
	log    zerolog.Logger
	cfg    *config.AppConfig
	tokens *security.TokenService

	authService      *service.AuthService
	uploadService    *service.UploadService
	budgetService    *service.BudgetService
	analyticsService *service.AnalyticsService

	db    *pgxpool.Pool
	cache *redis.Client
	store *storage.ObjectStore

	users        *repository.UserRepository
	campaigns    *repository.CampaignRepository
	media        *repository.MediaRepository
	services     *repository.ServiceRepository
	team         *repository.TeamMemberRepository
	portfolio    *repository.PortfolioRepository
	testimonials *repository.TestimonialRepository
	jobs         *repository.JobRepository
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	tokens := security.NewTokenService(
		cfg.Security.JWTAccessSecret,
		cfg.Security.JWTRefreshSecret,
		cfg.Security.JWTAccessTTL,
		cfg.Security.JWTRefreshTTL,
	)

	userRepo := repository.NewUserRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	mediaRepo := repository.NewMediaRepository(db)

	return HandlerSet{
		log:    log,
		cfg:    cfg,
		tokens: tokens,

		authService:      service.NewAuthService(userRepo, tokens, log),
		uploadService:    service.NewUploadService(mediaRepo, campaignRepo, store, cfg, log),
		budgetService:    service.NewBudgetService(budgetRepo, campaignRepo, log),
		analyticsService: service.NewAnalyticsService(analyticsRepo, campaignRepo, cache, log),

		db:    db,
		cache: cache,
		store: store,

		users:        userRepo,
		campaigns:    campaignRepo,
		media:        mediaRepo,
		services:     repository.NewServiceRepository(db),
		team:         repository.NewTeamMemberRepository(db),
		portfolio:    repository.NewPortfolioRepository(db),
		testimonials: repository.NewTestimonialRepository(db),
		jobs:         repository.NewJobRepository(db),
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")

	authed := middleware.Auth(h.tokens)
	adminOnly := middleware.RequireRoles(models.UserRoleAdmin)
	managers := middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleCampaignManager)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.SignUp)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)

		me := auth.Group("")
		me.Use(authed)
		me.GET("/profile", h.Profile)
		me.PUT("/profile", h.UpdateProfile)
	}

	users := v1.Group("/users")
	users.Use(authed)
	{
		users.GET("", managers, h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", adminOnly, h.DeleteUser)
		users.PATCH("/:id/role", adminOnly, h.UpdateUserRole)
		users.PATCH("/:id/status", adminOnly, h.UpdateUserStatus)
	}

	campaigns := v1.Group("/campaigns")
	campaigns.Use(authed)
	{
		campaigns.GET("", h.ListCampaigns)
		campaigns.GET("/:id", h.GetCampaign)

		campaigns.POST("", managers, h.CreateCampaign)
		campaigns.PUT("/:id", managers, h.UpdateCampaign)
		campaigns.DELETE("/:id", managers, h.DeleteCampaign)
		campaigns.PATCH("/:id/activate", managers, h.ActivateCampaign)
		campaigns.PATCH("/:id/pause", managers, h.PauseCampaign)
		campaigns.PATCH("/:id/complete", managers, h.CompleteCampaign)
		campaigns.PATCH("/:id/assign", managers, h.AssignCampaignClients)
	}

	budget := v1.Group("/budget")
	budget.Use(authed)
	{
		budget.GET("/campaigns/:id", h.GetBudget)
		budget.GET("/campaigns/:id/history", h.BudgetHistory)

		budget.POST("/campaigns/:id", managers, h.SetBudget)
		budget.PUT("/campaigns/:id", managers, h.UpdateBudget)
		budget.POST("/campaigns/:id/spend", managers, h.TrackSpend)
	}

	analytics := v1.Group("/analytics")
	analytics.Use(authed)
	{
		analytics.GET("/campaigns/:id", h.ListAnalytics)
		analytics.GET("/campaigns/:id/aggregate", h.AggregateAnalytics)
		analytics.GET("/campaigns/:id/export", h.ExportAnalytics)

		analytics.POST("/campaigns/:id", managers, h.RecordAnalytics)
	}

	media := v1.Group("/media")
	media.Use(authed)
	{
		media.GET("/campaigns/:id", h.ListCampaignMedia)
		media.GET("/:id", h.GetMedia)
		media.DELETE("/:id", h.DeleteMedia)

		media.POST("/upload", managers, h.UploadMedia)
	}

	// Public site content. Reads are anonymous; a valid token upgrades the
	// view (hidden testimonials, closed jobs) for admins.
	h.registerContent(v1, "/services", contentRoutes{
		list: h.ListServices, get: h.GetService,
		create: h.CreateService, update: h.UpdateService, remove: h.DeleteService,
	})
	h.registerContent(v1, "/team", contentRoutes{
		list: h.ListTeamMembers, get: h.GetTeamMember,
		create: h.CreateTeamMember, update: h.UpdateTeamMember, remove: h.DeleteTeamMember,
	})
	h.registerContent(v1, "/portfolio", contentRoutes{
		list: h.ListPortfolio, get: h.GetPortfolioItem,
		create: h.CreatePortfolioItem, update: h.UpdatePortfolioItem, remove: h.DeletePortfolioItem,
	})
	h.registerContent(v1, "/testimonials", contentRoutes{
		list: h.ListTestimonials, get: h.GetTestimonial,
		create: h.CreateTestimonial, update: h.UpdateTestimonial, remove: h.DeleteTestimonial,
		extra: func(public, manage *gin.RouterGroup) {
			manage.PATCH("/:id/visibility", h.ToggleTestimonialVisibility)
		},
	})
	h.registerContent(v1, "/jobs", contentRoutes{
		list: h.ListJobs, get: h.GetJob,
		create: h.CreateJob, update: h.UpdateJob, remove: h.DeleteJob,
	})
}

type contentRoutes struct {
	list   gin.HandlerFunc
	get    gin.HandlerFunc
	create gin.HandlerFunc
	update gin.HandlerFunc
	remove gin.HandlerFunc
	extra  func(public, manage *gin.RouterGroup)
}

func (h HandlerSet) registerContent(v1 *gin.RouterGroup, prefix string, routes contentRoutes) {
	public := v1.Group(prefix)
	public.Use(middleware.OptionalAuth(h.tokens))
	public.GET("", routes.list)
	public.GET("/:id", routes.get)

	manage := v1.Group(prefix)
	manage.Use(
		middleware.Auth(h.tokens),
		middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleCampaignManager),
	)
	manage.POST("", routes.create)
	manage.PUT("/:id", routes.update)
	manage.DELETE("/:id", routes.remove)

	if routes.extra != nil {
		routes.extra(public, manage)
	}
}
