package server

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sproutly/sproutly-backend/internal/ai"
	"github.com/sproutly/sproutly-backend/internal/handler"
	appmw "github.com/sproutly/sproutly-backend/internal/middleware"
	"github.com/sproutly/sproutly-backend/internal/realtime"
	"github.com/sproutly/sproutly-backend/internal/repository"
	"github.com/sproutly/sproutly-backend/internal/service"
	"github.com/sproutly/sproutly-backend/internal/storage"
	"gorm.io/gorm"
)

type Server struct {
	e          *echo.Echo
	hub        *realtime.Hub
	reconciler *realtime.Reconciler
	repos      []interface{ SetDB(*gorm.DB) }
	sha        string
	build      string
}

func New(db *gorm.DB, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	hub := realtime.NewHub()

	progressRepo := repository.NewProgressRepository(db)
	treeRepo := repository.NewTreeRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	diagnosisRepo := repository.NewDiagnosisRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	shopRepo := repository.NewShopRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	gameRepo := repository.NewGameRepository(db)

	progressSvc := service.NewProgressService(progressRepo, hub)
	notificationSvc := service.NewNotificationService(notificationRepo, preferenceRepo, hub)
	badgeSvc := service.NewBadgeService(badgeRepo, achievementRepo, treeRepo, challengeRepo, gameRepo, communityRepo, progressSvc, notificationSvc, hub)
	challengeSvc := service.NewChallengeService(challengeRepo, treeRepo, gameRepo, progressSvc, badgeSvc, notificationSvc, hub)
	healthSvc := service.NewHealthService(diagnosisRepo, notificationSvc, hub)
	leaderboardSvc := service.NewLeaderboardService(challengeRepo, treeRepo)
	preferenceSvc := service.NewPreferenceService(preferenceRepo)
	shopSvc := service.NewShopService(shopRepo, progressSvc, notificationSvc)
	communitySvc := service.NewCommunityService(communityRepo, badgeSvc, notificationSvc, hub)
	gameSvc := service.NewGameService(gameRepo, progressSvc, badgeSvc, hub)

	impactClient := ai.NewImpactClient(os.Getenv("GEMINI_MODEL"))
	plantSvc := service.NewPlantService(treeRepo, communityRepo, progressSvc, badgeSvc, impactClient, hub)

	snapshotSvc := service.NewSnapshotService(treeRepo, diagnosisRepo, leaderboardSvc)
	reconciler := realtime.NewReconciler(hub, snapshotSvc, notificationSvc)
	reconciler.Start()

	var uploader *storage.Uploader
	if bucket := os.Getenv("STORAGE_BUCKET"); bucket != "" {
		up, err := storage.NewUploader(context.Background(), bucket)
		if err != nil {
			log.Printf("storage init failed, photo upload disabled: %v", err)
		} else {
			uploader = up
		}
	}

	chatClient := ai.NewChatClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"), nil)
	translator := ai.NewCachingTranslator(ai.NewGeminiTranslator(os.Getenv("GEMINI_MODEL")))

	progressHandler := handler.NewProgressHandler(progressSvc, badgeSvc, achievementRepo)
	plantHandler := handler.NewPlantHandler(plantSvc, uploader)
	challengeHandler := handler.NewChallengeHandler(challengeSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	preferenceHandler := handler.NewPreferenceHandler(preferenceSvc)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)
	healthHandler := handler.NewHealthHandler(healthSvc)
	shopHandler := handler.NewShopHandler(shopSvc)
	communityHandler := handler.NewCommunityHandler(communitySvc)
	gameHandler := handler.NewGameHandler(gameSvc)
	aiHandler := handler.NewAIHandler(chatClient, translator)

	authMw, err := appmw.NewAuthMiddleware(context.Background())
	if err != nil {
		log.Printf("firebase auth unavailable, running without auth: %v", err)
		authMw = nil
	}
	realtimeHandler := handler.NewRealtimeHandler(hub, reconciler, authMw)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	requireAuth := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if authMw != nil {
		requireAuth = authMw.RequireAuth
	}

	api := e.Group("/api")
	api.GET("/progress", progressHandler.Get, requireAuth)
	api.GET("/stats", progressHandler.Stats, requireAuth)
	api.POST("/trees", plantHandler.Plant, requireAuth)
	api.GET("/trees", plantHandler.List, requireAuth)
	api.POST("/trees/photo", plantHandler.UploadPhoto, requireAuth)
	api.GET("/challenges", challengeHandler.List, requireAuth)
	api.POST("/challenges/:id/claim", challengeHandler.Claim, requireAuth)
	api.GET("/notifications", notificationHandler.List, requireAuth)
	api.POST("/notifications/:id/read", notificationHandler.MarkRead, requireAuth)
	api.POST("/notifications/read-all", notificationHandler.MarkAllRead, requireAuth)
	api.GET("/preferences", preferenceHandler.Get, requireAuth)
	api.PUT("/preferences", preferenceHandler.Update, requireAuth)
	api.GET("/leaderboard", leaderboardHandler.Get, requireAuth)
	api.POST("/health/diagnoses", healthHandler.AddDiagnosis, requireAuth)
	api.GET("/health/diagnoses", healthHandler.Diagnoses, requireAuth)
	api.POST("/health/diagnoses/:id/resolve", healthHandler.Resolve, requireAuth)
	api.GET("/health/reports", healthHandler.Reports, requireAuth)
	api.GET("/health/alerts", healthHandler.Alerts, requireAuth)
	api.GET("/shop", shopHandler.Catalog, requireAuth)
	api.POST("/shop/:id/purchase", shopHandler.Purchase, requireAuth)
	api.POST("/shop/:id/equip", shopHandler.Equip, requireAuth)
	api.GET("/community/feed", communityHandler.Feed, requireAuth)
	api.POST("/community/posts", communityHandler.CreatePost, requireAuth)
	api.POST("/community/posts/:id/like", communityHandler.Like, requireAuth)
	api.POST("/games/sessions", gameHandler.RecordSession, requireAuth)
	api.POST("/chat", aiHandler.Chat, requireAuth)
	api.POST("/translate", aiHandler.Translate, requireAuth)
	api.GET("/realtime", realtimeHandler.Stream)

	return &Server{
		e:          e,
		hub:        hub,
		reconciler: reconciler,
		repos: []interface{ SetDB(*gorm.DB) }{
			progressRepo, treeRepo, badgeRepo, achievementRepo, challengeRepo,
			diagnosisRepo, notificationRepo, preferenceRepo, shopRepo,
			communityRepo, gameRepo,
		},
		sha:   sha,
		build: buildTime,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// SetDB swaps the live connection into every repository, for the async
// startup path where the server begins listening before the DB is ready.
func (s *Server) SetDB(db *gorm.DB) {
	for _, r := range s.repos {
		r.SetDB(db)
	}
}

// Shutdown stops the change pipeline before the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.reconciler.Close()
	s.hub.Close()
	return s.e.Shutdown(ctx)
}
