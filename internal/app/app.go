package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pranav1597/viewtube-backend/internal/config"
	"github.com/pranav1597/viewtube-backend/internal/handler"
	"github.com/pranav1597/viewtube-backend/internal/repository"
	"github.com/pranav1597/viewtube-backend/internal/service"
	"github.com/pranav1597/viewtube-backend/internal/utils"
	"github.com/pranav1597/viewtube-backend/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	repos  *repository.Repositories
	router *gin.Engine
	server *http.Server
}

type handlers struct {
	auth         *handler.AuthHandler
	video        *handler.VideoHandler
	comment      *handler.CommentHandler
	like         *handler.LikeHandler
	playlist     *handler.PlaylistHandler
	subscription *handler.SubscriptionHandler
	tweet        *handler.TweetHandler
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	logger := infra.Logger()
	repos := repository.NewRepositories(infra.Mongo())

	tokenManager := utils.NewTokenManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)

	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	authService := service.NewAuthService(repos.User, tokenManager, infra.Storage(), logger, cfg.Security.BCryptCost)
	videoService := service.NewVideoService(repos.Video, repos.User, infra.Storage(), logger)
	commentService := service.NewCommentService(repos.Comment, repos.Video)
	likeService := service.NewLikeService(repos.Like)
	playlistService := service.NewPlaylistService(repos.Playlist, repos.Video)
	subscriptionService := service.NewSubscriptionService(repos.Subscription, repos.User)
	tweetService := service.NewTweetService(repos.Tweet)

	cookies := handler.CookieConfig{
		AccessMaxAge:  tokenManager.AccessTokenExpiry(),
		RefreshMaxAge: tokenManager.RefreshTokenExpiry(),
		Secure:        cfg.Env == "production",
	}

	h := handlers{
		auth:         handler.NewAuthHandler(authService, cookies, logger),
		video:        handler.NewVideoHandler(videoService, logger),
		comment:      handler.NewCommentHandler(commentService, logger),
		like:         handler.NewLikeHandler(likeService, logger),
		playlist:     handler.NewPlaylistHandler(playlistService, logger),
		subscription: handler.NewSubscriptionHandler(subscriptionService, logger),
		tweet:        handler.NewTweetHandler(tweetService, logger),
	}

	router := gin.Default()
	router.Use(otelgin.Middleware("viewtube-backend"))
	router.Use(handler.LoggerMiddleware(logger))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, h, authService, rateLimiter, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		repos:  repos,
		router: router,
		server: srv,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	h handlers,
	authService service.AuthService,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	authRequired := handler.AuthMiddleware(authService)
	limited := handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration, handler.IPBasedKey)

	api := router.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("/register", limited, h.auth.Register)
			users.POST("/login", limited, h.auth.Login)
			users.POST("/refresh-token", h.auth.Refresh)
			users.POST("/logout", authRequired, h.auth.Logout)
			users.POST("/change-password", authRequired, h.auth.ChangePassword)
			users.GET("/current-user", authRequired, h.auth.GetCurrentUser)
			users.GET("/channel/:username", authRequired, h.auth.GetChannelProfile)
			users.GET("/watch-history", authRequired, h.auth.GetWatchHistory)
			users.PATCH("/update-account", authRequired, h.auth.UpdateAccount)
			users.PATCH("/update-profile-pic", authRequired, h.auth.UpdateProfilePic)
			users.PATCH("/update-cover-pic", authRequired, h.auth.UpdateCoverPic)
		}

		videos := api.Group("/videos", authRequired)
		{
			videos.POST("/upload", h.video.Upload)
			videos.GET("", h.video.List)
			videos.GET("/:videoId", h.video.Get)
			videos.PATCH("/:videoId", h.video.Update)
			videos.DELETE("/:videoId", h.video.Delete)
		}

		comments := api.Group("/comments", authRequired)
		{
			comments.POST("/:videoId", h.comment.Create)
			comments.GET("/:videoId", h.comment.ListByVideo)
			comments.PATCH("/:commentId", h.comment.Update)
			comments.DELETE("/:commentId", h.comment.Delete)
		}

		likes := api.Group("/likes", authRequired)
		{
			likes.POST("/video/:videoId", h.like.ToggleVideo)
			likes.POST("/comment/:commentId", h.like.ToggleComment)
			likes.POST("/tweet/:tweetId", h.like.ToggleTweet)
			likes.GET("/videos", h.like.LikedVideos)
		}

		playlists := api.Group("/playlists", authRequired)
		{
			playlists.POST("", h.playlist.Create)
			playlists.GET("/user/:userId", h.playlist.ListByUser)
			playlists.GET("/:playlistId", h.playlist.Get)
			playlists.POST("/:playlistId/videos/:videoId", h.playlist.AddVideo)
			playlists.DELETE("/:playlistId/videos/:videoId", h.playlist.RemoveVideo)
			playlists.PATCH("/:playlistId", h.playlist.Update)
			playlists.DELETE("/:playlistId", h.playlist.Delete)
		}

		subscriptions := api.Group("/subscriptions", authRequired)
		{
			subscriptions.POST("/:channelId", h.subscription.Toggle)
			subscriptions.GET("/subscribers", h.subscription.Subscribers)
			subscriptions.GET("/subscribed-to", h.subscription.SubscribedTo)
		}

		tweets := api.Group("/tweets", authRequired)
		{
			tweets.POST("", h.tweet.Create)
			tweets.GET("", h.tweet.List)
			tweets.GET("/:tweetId", h.tweet.Get)
			tweets.PATCH("/:tweetId", h.tweet.Update)
			tweets.DELETE("/:tweetId", h.tweet.Delete)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	if err := a.repos.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
