// Package server wires services, handlers and middleware into the HTTP
// router.
package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/brand-studio-api/internal/constants"
	"github.com/yukikurage/brand-studio-api/internal/email"
	"github.com/yukikurage/brand-studio-api/internal/handlers"
	"github.com/yukikurage/brand-studio-api/internal/middleware"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/ratelimit"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"github.com/yukikurage/brand-studio-api/internal/services"
	"github.com/yukikurage/brand-studio-api/internal/storage"
	"github.com/yukikurage/brand-studio-api/internal/validation"
	"go.uber.org/zap"
)

// Deps is everything the router needs from the outside world.
type Deps struct {
	Log          *zap.Logger
	Repos        *repository.Repositories
	SessionStore sessions.Store
	Store        storage.Store
	Mailer       email.Sender
	BaseURL      string

	// AuthLimiter guards /api/auth; nil disables rate limiting.
	AuthLimiter ratelimit.Limiter
	// Generator drafts copy; nil switches AI generation off.
	Generator services.CopyGenerator
	// LocalFiles, when set, is served at LocalFilesPath.
	LocalFiles     *storage.LocalStore
	LocalFilesPath string
}

// Services are the application services built from Deps.
type Services struct {
	Activity      *services.ActivityService
	Notifications *services.NotificationService
	Auth          *services.AuthService
	Users         *services.UserService
	Projects      *services.ProjectService
	Assets        *services.AssetService
	Copy          *services.CopyService
	Content       *services.ContentService
	LaunchTasks   *services.LaunchTaskService
	Pages         *services.PageService
	Files         *services.FileService
	Messages      *services.MessageService
}

// NewServices builds every service on top of deps.
func NewServices(deps Deps) *Services {
	activity := services.NewActivityService(deps.Repos)
	notifier := services.NewNotificationService(deps.Repos)

	return &Services{
		Activity:      activity,
		Notifications: notifier,
		Auth:          services.NewAuthService(deps.Repos, activity, deps.Mailer, deps.BaseURL, deps.Log),
		Users:         services.NewUserService(deps.Repos, activity, deps.Store, deps.Log),
		Projects:      services.NewProjectService(deps.Repos, activity),
		Assets:        services.NewAssetService(deps.Repos, activity, notifier),
		Copy:          services.NewCopyService(deps.Repos, activity, notifier, deps.Generator),
		Content:       services.NewContentService(deps.Repos, activity),
		LaunchTasks:   services.NewLaunchTaskService(deps.Repos, activity, notifier),
		Pages:         services.NewPageService(deps.Repos, activity),
		Files:         services.NewFileService(deps.Repos, activity, notifier, deps.Store, deps.Log),
		Messages:      services.NewMessageService(deps.Repos, activity, notifier),
	}
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(deps Deps) *gin.Engine {
	svc := NewServices(deps)
	v := validation.New()

	authHandler := handlers.NewAuthHandler(svc.Auth, v)
	userHandler := handlers.NewUserHandler(svc.Users, v)
	projectHandler := handlers.NewProjectHandler(svc.Projects, v)
	assetHandler := handlers.NewAssetHandler(svc.Assets, v)
	copyHandler := handlers.NewCopyHandler(svc.Copy, v)
	contentHandler := handlers.NewContentHandler(svc.Content, svc.LaunchTasks, svc.Pages, v)
	fileHandler := handlers.NewFileHandler(svc.Files)
	activityHandler := handlers.NewActivityHandler(svc.Activity, svc.Messages, v)
	notificationHandler := handlers.NewNotificationHandler(svc.Notifications)

	r := gin.New()
	r.MaxMultipartMemory = constants.MaxProjectFileSize
	r.Use(middleware.Recovery(deps.Log))
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))

	requireAuth := middleware.RequireAuth(deps.Repos)
	projectAccess := middleware.RequireProjectAccess(deps.Repos)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Brand Studio API is running",
		})
	})

	r.GET("/dashboard", middleware.OptionalSession(deps.Repos), handlers.Dashboard)

	if deps.LocalFiles != nil && deps.LocalFilesPath != "" {
		r.Static(deps.LocalFilesPath, deps.LocalFiles.Root())
	}

	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		authRoutes := api.Group("/auth")
		if deps.AuthLimiter != nil {
			authRoutes.Use(middleware.RateLimit(deps.AuthLimiter, deps.Log))
		}
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
			authRoutes.POST("/reset-password", authHandler.ResetPassword)
			authRoutes.GET("/me", requireAuth, authHandler.GetCurrentUser)
			authRoutes.PATCH("/password", requireAuth, authHandler.ChangePassword)
		}

		user := api.Group("/user", requireAuth)
		{
			user.POST("/deactivate", userHandler.Deactivate)
			user.GET("/preferences", userHandler.GetPreferences)
			user.PATCH("/preferences", userHandler.UpdatePreferences)
		}

		admin := api.Group("/admin", requireAuth, middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/users/:userId/deactivate", userHandler.DeactivateUser)
		}

		api.POST("/upload/profile", requireAuth, userHandler.UploadProfileImage)

		api.GET("/activity", requireAuth, activityHandler.ListActivity)

		messages := api.Group("/messages", requireAuth)
		{
			messages.GET("", activityHandler.ListMessages)
			messages.POST("/send", activityHandler.SendMessage)
		}

		notifications := api.Group("/notifications", requireAuth)
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.PATCH("/read-all", notificationHandler.MarkAllRead)
			notifications.PATCH("/:id", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.DeleteNotification)
		}

		api.PATCH("/palettes/:id/approve", requireAuth, assetHandler.ApprovePalette)

		projects := api.Group("/projects", requireAuth)
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)

			project := projects.Group("/:id", projectAccess)
			{
				project.GET("", projectHandler.GetProject)

				project.GET("/palettes", assetHandler.ListPalettes)
				project.POST("/palettes", assetHandler.CreatePalette)

				project.GET("/typography", assetHandler.ListTypography)
				project.POST("/typography", assetHandler.CreateTypography)
				project.PATCH("/typography/:typographyId", assetHandler.UpdateTypography)
				project.DELETE("/typography/:typographyId", assetHandler.DeleteTypography)
				project.PATCH("/typography/:typographyId/approve", assetHandler.ApproveTypography)

				project.GET("/copy", copyHandler.ListCopy)
				project.POST("/copy", copyHandler.CreateCopy)
				project.POST("/copy/generate", copyHandler.GenerateCopy)
				project.PATCH("/copy/:snippetId", copyHandler.UpdateCopy)
				project.DELETE("/copy/:snippetId", copyHandler.DeleteCopy)
				project.PATCH("/copy/:snippetId/approve", copyHandler.ApproveCopy)
				project.PATCH("/copy/:snippetId/favorite", copyHandler.FavoriteCopy)

				project.GET("/content", contentHandler.ListPosts)
				project.POST("/content", contentHandler.CreatePost)
				project.PATCH("/content/:postId/publish", contentHandler.PublishPost)

				project.GET("/launch-tasks", contentHandler.ListTasks)
				project.POST("/launch-tasks", contentHandler.CreateTask)
				project.PATCH("/launch-tasks/:taskId", contentHandler.UpdateTask)

				project.GET("/pages", contentHandler.ListPages)
				project.POST("/pages", contentHandler.CreatePage)
				project.GET("/pages/:pageId/sections", contentHandler.ListSections)
				project.POST("/pages/:pageId/sections", contentHandler.CreateSection)

				project.GET("/files", fileHandler.ListFiles)
				project.POST("/files", fileHandler.UploadFile)
				project.DELETE("/files/:fileId", fileHandler.DeleteFile)
				project.PATCH("/logos/:fileId/approve", fileHandler.ApproveLogo)
			}
		}
	}

	return r
}
