package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"linkstash/config"
	"linkstash/handler"
	"linkstash/middleware"
	"linkstash/repository"
	"linkstash/services"
	"linkstash/usecase"
	"linkstash/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
}

// buildRepositories picks the persistence backend. Mongo is the
// default; the flat-file store serves single-node setups and tests.
func buildRepositories(cfg config.DatabaseConfig) (repository.ItemRepository, repository.FolderRepository, repository.UserRepository) {
	if cfg.Backend == config.BackendFile {
		log.Printf("Using file backend at %s", cfg.FilePath)
		fileStore := repository.NewFileStore(cfg.FilePath)
		return fileStore, fileStore, fileStore
	}

	utils.InitMongoClient()
	if err := repository.SetupIndexes(utils.MongoClient.Database(cfg.DatabaseName)); err != nil {
		log.Printf("Failed to create indexes: %v", err)
	}
	return repository.GetItemsRepo(utils.MongoClient),
		repository.GetFoldersRepo(utils.MongoClient),
		repository.GetUsersRepo(utils.MongoClient)
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	dbConfig := config.LoadDatabaseConfig()
	itemRepo, folderRepo, userRepo := buildRepositories(dbConfig)

	var queryCache *services.QueryCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err := services.NewQueryCache(redisURL, utils.GetEnvAsDuration("CACHE_TTL", 5*time.Minute))
		if err != nil {
			log.Printf("Query cache disabled: %v", err)
		} else {
			queryCache = cache
		}
	}

	itemService := &usecase.ItemService{
		ItemRepo:   itemRepo,
		FolderRepo: folderRepo,
		Cache:      queryCache,
	}
	folderService := &usecase.FolderService{
		FolderRepo: folderRepo,
		ItemRepo:   itemRepo,
	}
	searchService := &usecase.SearchService{
		ItemRepo:   itemRepo,
		FolderRepo: folderRepo,
	}
	userService := &usecase.UserService{
		UserRepo: userRepo,
	}

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(utils.GetEnvAsInt64("MAX_REQUEST_SIZE", 10<<20)))

	router.GET("/health", middleware.CacheControlMiddleware("10"), handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/signup", func(c *gin.Context) {
				handler.SignupHandler(c, userService)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, userService)
			})
		}
	}

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		items := protected.Group("/items")
		{
			items.POST("/", func(c *gin.Context) {
				handler.CreateItemHandler(c, itemService)
			})
			items.GET("/", func(c *gin.Context) {
				handler.ListItemsHandler(c, itemService)
			})
			items.GET("/recent", func(c *gin.Context) {
				handler.RecentItemsHandler(c, itemService)
			})
			items.GET("/starred", func(c *gin.Context) {
				handler.StarredItemsHandler(c, itemService)
			})
			items.GET("/trash", func(c *gin.Context) {
				handler.TrashItemsHandler(c, itemService)
			})
			items.GET("/categories", func(c *gin.Context) {
				handler.CategoryCountsHandler(c, itemService)
			})
			items.GET("/:id", func(c *gin.Context) {
				handler.GetItemHandler(c, itemService)
			})
			items.PATCH("/:id", func(c *gin.Context) {
				handler.UpdateItemHandler(c, itemService)
			})
			items.PATCH("/:id/archive", func(c *gin.Context) {
				handler.ArchiveItemHandler(c, itemService)
			})
			items.POST("/:id/star", func(c *gin.Context) {
				handler.ToggleStarHandler(c, itemService)
			})
			items.POST("/:id/restore", func(c *gin.Context) {
				handler.RestoreItemHandler(c, itemService)
			})
			items.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteItemHandler(c, itemService)
			})
			items.DELETE("/trash/empty", func(c *gin.Context) {
				handler.EmptyTrashHandler(c, itemService)
			})
		}

		folders := protected.Group("/folders")
		{
			folders.GET("/", func(c *gin.Context) {
				handler.ListFoldersHandler(c, folderService)
			})
			folders.POST("/", func(c *gin.Context) {
				handler.CreateFolderHandler(c, folderService)
			})
			folders.GET("/:id", func(c *gin.Context) {
				handler.GetFolderHandler(c, folderService)
			})
			folders.PATCH("/:id", func(c *gin.Context) {
				handler.UpdateFolderHandler(c, folderService)
			})
			folders.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteFolderHandler(c, folderService)
			})
			folders.PUT("/:id/pin", func(c *gin.Context) {
				handler.TogglePinHandler(c, folderService)
			})
		}

		search := protected.Group("/search")
		{
			search.GET("/", func(c *gin.Context) {
				handler.SearchHandler(c, searchService)
			})
			search.GET("/suggestions", func(c *gin.Context) {
				handler.SuggestionsHandler(c, searchService)
			})
		}
	}

	return router
}

func main() {
	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
