package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/auth"
	"github.com/labs-polaris/Polaris-Back-Web/internal/config"
	"github.com/labs-polaris/Polaris-Back-Web/internal/handlers"
	"github.com/labs-polaris/Polaris-Back-Web/internal/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func New(cfg *config.Config, gdb *gorm.DB, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-Id"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}

	r.Use(cors.New(corsConfig))

	tm := auth.NewTokenManager(cfg)
	h := handlers.New(gdb, tm)
	authRequired := middleware.Auth(tm, gdb)

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.POST("/refresh", h.Refresh)
			authGroup.GET("/me", authRequired, h.Me)
		}

		orgs := api.Group("/orgs", authRequired)
		{
			orgs.GET("", h.ListOrganizations)
			orgs.POST("", h.CreateOrganization)
			orgs.GET("/:org_id", h.GetOrganization)
			orgs.PATCH("/:org_id", h.UpdateOrganization)
			orgs.PUT("/:org_id", h.UpdateOrganization)
			orgs.DELETE("/:org_id", h.DeleteOrganization)

			orgs.GET("/:org_id/members", h.ListMembers)
			orgs.POST("/:org_id/members", h.AddMember)
			orgs.PATCH("/:org_id/members/:member_id", h.UpdateMember)
			orgs.DELETE("/:org_id/members/:member_id", h.DeleteMember)

			orgs.GET("/:org_id/projects", h.ListProjects)
			orgs.POST("/:org_id/projects", h.CreateProject)

			orgs.GET("/:org_id/policies", h.ListPolicies)
			orgs.POST("/:org_id/policies", h.CreatePolicy)

			orgs.GET("/:org_id/integrations", h.ListIntegrations)
			orgs.POST("/:org_id/integrations", h.CreateIntegration)
		}

		projects := api.Group("/projects", authRequired)
		{
			projects.GET("/:project_id", h.GetProject)
			projects.PATCH("/:project_id", h.UpdateProject)
			projects.PUT("/:project_id", h.UpdateProject)
			projects.DELETE("/:project_id", h.DeleteProject)

			projects.GET("/:project_id/services", h.ListServices)
			projects.POST("/:project_id/services", h.CreateService)
		}

		services := api.Group("/services", authRequired)
		{
			services.GET("/:service_id", h.GetService)
			services.PATCH("/:service_id", h.UpdateService)
			services.PUT("/:service_id", h.UpdateService)
			services.DELETE("/:service_id", h.DeleteService)
		}

		policies := api.Group("/policies", authRequired)
		{
			policies.GET("/:policy_id", h.GetPolicy)
			policies.PATCH("/:policy_id", h.UpdatePolicy)
			policies.PUT("/:policy_id", h.UpdatePolicy)
			policies.DELETE("/:policy_id", h.DeletePolicy)
		}

		integrations := api.Group("/integrations", authRequired)
		{
			integrations.GET("/:integration_id", h.GetIntegration)
			integrations.PATCH("/:integration_id", h.UpdateIntegration)
			integrations.PUT("/:integration_id", h.UpdateIntegration)
			integrations.DELETE("/:integration_id", h.DeleteIntegration)
		}

		api.GET("/dashboard/summary", authRequired, h.GetDashboardSummary)
	}

	return r
}
