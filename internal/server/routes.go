package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Daeuning/WSD-Assignment-03/internal/auth"
	"github.com/Daeuning/WSD-Assignment-03/internal/controller/application"
	"github.com/Daeuning/WSD-Assignment-03/internal/controller/company"
	"github.com/Daeuning/WSD-Assignment-03/internal/controller/job"
	"github.com/Daeuning/WSD-Assignment-03/internal/controller/membership"
	"github.com/Daeuning/WSD-Assignment-03/internal/controller/review"
	"github.com/Daeuning/WSD-Assignment-03/internal/controller/search"
	"github.com/Daeuning/WSD-Assignment-03/internal/controller/user"
	"github.com/Daeuning/WSD-Assignment-03/internal/middleware"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/services"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(log.Logger),
		cors.New(corsConfig(s.Config.AllowOrigins)),
		middleware.SafeHeader(),
		middleware.SizeLimit(MaxBodyBytes),
	)

	listing := services.NewListingService(s.DB, s.Config.PageSize)
	catalog := services.NewCatalogService(s.DB)

	uc := user.NewUserController(services.NewUserService(s.DB, s.Tokens))
	lc := auth.NewLogoutController(s.DB, s.Blacklist)
	jc := job.NewJobController(listing, catalog)
	cc := company.NewCompanyController(catalog)
	mc := membership.NewMembershipController(services.NewToggleService(s.DB))
	ac := application.NewApplicationController(services.NewApplicationService(s.DB))
	rc := review.NewReviewController(services.NewReviewService(s.DB))
	sc := search.NewSearchController(listing)

	r.GET("/health", s.healthHandler)

	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			limited := authRoute.Group("", middleware.RateLimiterMiddleware(s.Config.RateLimitPerSecond))
			limited.POST("register", uc.RegisterHandler)
			limited.POST("login", uc.LoginHandler)
			limited.POST("refresh", uc.RefreshHandler)
		}

		// public reads, a valid token on /jobs lets keyword searches be recorded
		v1.GET("/jobs", middleware.OptionalAuth(s.DB, s.Tokens), middleware.JwtBlacklistCheck(s.Blacklist), jc.ListJobsHandler)
		v1.GET("/jobs/:id", jc.GetJobHandler)
		v1.GET("/jobs/:id/reviews", rc.ListReviewsHandler)
		v1.GET("/companies", cc.ListCompaniesHandler)
		v1.GET("/companies/:id", cc.GetCompanyHandler)

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB, s.Tokens), middleware.JwtBlacklistCheck(s.Blacklist))

			needAuth.POST("/auth/logout", lc.LogoutHandler)

			me := needAuth.Group("/users/me")
			{
				me.GET("", uc.GetProfileHandler)
				me.PUT("", uc.UpdateProfileHandler)
				me.DELETE("", uc.DeleteAccountHandler)
			}

			needAuth.POST("/bookmarks", mc.ToggleBookmarkHandler)
			needAuth.GET("/bookmarks", mc.ListBookmarksHandler)
			needAuth.POST("/favorites", mc.ToggleFavoriteHandler)
			needAuth.GET("/favorites", mc.ListFavoritesHandler)

			applicationRoute := needAuth.Group("/applications")
			{
				applicationRoute.POST("", ac.ApplyHandler)
				applicationRoute.GET("", ac.ListApplicationsHandler)
				applicationRoute.DELETE("/:id", ac.CancelApplicationHandler)
			}

			needAuth.POST("/jobs/:id/reviews", rc.CreateReviewHandler)
			needAuth.PATCH("/reviews/:id", rc.UpdateReviewHandler)
			needAuth.GET("/search/top-keywords", sc.TopKeywordsHandler)

			needAdmin := needAuth.Group("")
			{
				needAdmin.Use(middleware.CheckRole(model.RoleAdmin))
				needAdmin.POST("/jobs", jc.CreateJobHandler)
				needAdmin.PATCH("/jobs/:id", jc.UpdateJobHandler)
				needAdmin.DELETE("/jobs/:id", jc.DeleteJobHandler)
				needAdmin.POST("/companies", cc.CreateCompanyHandler)
				needAdmin.PATCH("/applications/:id/status", ac.UpdateStatusHandler)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		utilities.RespondError(c, utilities.NotFound("Route not found"))
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}
	if len(origins) == 0 || utilities.Contains(origins, "*") {
		// browsers refuse credentials with a wildcard origin
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

func (s *Server) healthHandler(c *gin.Context) {
	stats := s.DB.Health()
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}
