package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/hunar-api/internal/config"
	"github.com/yourusername/hunar-api/internal/handler"
	"github.com/yourusername/hunar-api/internal/middleware"
	pgRepo "github.com/yourusername/hunar-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/hunar-api/internal/repository/redis"
	"github.com/yourusername/hunar-api/internal/service"
	"github.com/yourusername/hunar-api/pkg/auth"
	"github.com/yourusername/hunar-api/pkg/database"
	"github.com/yourusername/hunar-api/pkg/storage"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}

	// Файловое хранилище аудиозаписей
	audioStore, err := storage.NewFSStore(cfg.Storage.AudioDir)
	if err != nil {
		log.Printf("Failed to init audio storage: %v", err)
		os.Exit(1)
	}

	// Репозитории
	userRepo := pgRepo.NewUserRepo(db)
	moduleRepo := pgRepo.NewModuleRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	answerRepo := pgRepo.NewAnswerRepo(db)
	responseRepo := pgRepo.NewResponseRepo(db)
	statusRepo := pgRepo.NewStatusRepo(db)
	overallRepo := pgRepo.NewOverallResultRepo(db)
	metricsRepo := pgRepo.NewMetricsRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to init cache repository: %v", err)
		os.Exit(1)
	}

	// JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to init JWT service: %v", err)
		os.Exit(1)
	}

	// Почтовый сервис: Resend, когда настроен, иначе noop
	var emailService service.EmailService
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			log.Printf("Failed to init email service: %v", err)
			os.Exit(1)
		}
	} else {
		emailService = &service.NoopEmailService{}
	}

	// Сервисы
	authService := service.NewAuthService(db, userRepo, moduleRepo, statusRepo, jwtService, emailService)
	userService := service.NewUserService(userRepo, responseRepo, statusRepo, overallRepo)
	moduleService := service.NewModuleService(db, moduleRepo, userRepo, questionRepo, cacheRepo)
	questionService := service.NewQuestionService(db, questionRepo, answerRepo, moduleRepo)
	assessmentService := service.NewAssessmentService(moduleRepo, questionRepo, answerRepo, responseRepo)
	evaluationService := service.NewEvaluationService(moduleRepo, statusRepo, responseRepo, overallRepo, metricsRepo, cacheRepo)
	audioService := service.NewAudioService(db, questionRepo, audioStore)

	isProduction := gin.Mode() == gin.ReleaseMode

	// Обработчики
	authHandler := handler.NewAuthHandler(authService, jwtService, userService, isProduction)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService, evaluationService)
	evaluationHandler := handler.NewEvaluationHandler(evaluationService, moduleService)
	moduleHandler := handler.NewModuleHandler(moduleService)
	adminHandler := handler.NewAdminHandler(userService, questionService, overallRepo)
	audioHandler := handler.NewAudioHandler(audioService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS: cookie-аутентификация требует credentials и явного origin
	allowOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	if cfg.Server.FrontendOrigin != "" {
		allowOrigins = append(allowOrigins, cfg.Server.FrontendOrigin)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)

			authedAuth := authGroup.Group("/")
			authedAuth.Use(authMiddleware.RequireAuth())
			{
				authedAuth.POST("/logout", authHandler.Logout)
				authedAuth.GET("/me", authHandler.Me)
			}
		}

		// Маршруты, требующие аутентификации
		authed := api.Group("/")
		authed.Use(authMiddleware.RequireAuth())
		{
			// Прохождение модулей: один параметризованный конвейер для всех
			moduleGroup := authed.Group("/modules")
			{
				moduleGroup.GET("", moduleHandler.List)

				byID := moduleGroup.Group("/:id")
				byID.Use(middleware.ExtractUintParam("id", "module_id"))
				{
					byID.GET("", moduleHandler.Get)
					byID.GET("/question", assessmentHandler.NextQuestion)
					byID.POST("/answer", assessmentHandler.SubmitAnswer)
					byID.GET("/result", assessmentHandler.Result)
				}
			}

			// Оценка и статусы
			authed.POST("/eval", evaluationHandler.Evaluate)
			authed.POST("/eval2", evaluationHandler.MarkCompleted)
			authed.GET("/overall-result", evaluationHandler.OverallResult)
			authed.GET("/check-completion", evaluationHandler.CheckCompletion)
			authed.GET("/get-test-status", evaluationHandler.TestStatus)
			authed.GET("/instructions", evaluationHandler.Instructions)

			// Модули, оцениваемые внешними движками
			authed.GET("/communication/question", assessmentHandler.CommunicationQuestion)
			authed.GET("/communication/result", assessmentHandler.CommunicationResult)
			authed.GET("/presentation/question", assessmentHandler.PresentationQuestion)
			authed.GET("/presentation/result", assessmentHandler.PresentationResult)

			// Аудирование
			authed.GET("/listening/audio", audioHandler.RandomAudio)
			authed.GET("/listening/audio/:recordingId",
				middleware.ExtractUintParam("recordingId", "recording_id"),
				audioHandler.Stream)
		}

		// Административные маршруты
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			// Пользователи
			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:phone", adminHandler.UpdateUser)
			admin.DELETE("/users/:phone", adminHandler.DeleteUser)
			admin.POST("/users/:phone/change-password", adminHandler.ChangePassword)
			admin.POST("/users/:phone/make-admin", adminHandler.MakeAdmin)

			// Модули
			admin.POST("/modules", moduleHandler.Create)
			adminModules := admin.Group("/modules/:id")
			adminModules.Use(middleware.ExtractUintParam("id", "module_id"))
			{
				adminModules.PUT("", moduleHandler.Update)
				adminModules.DELETE("", moduleHandler.Delete)
				adminModules.GET("/questions", adminHandler.ListQuestions)
			}

			// Вопросы
			admin.POST("/questions", adminHandler.CreateQuestion)
			adminQuestions := admin.Group("/questions/:id")
			adminQuestions.Use(middleware.ExtractUintParam("id", "question_id"))
			{
				adminQuestions.GET("", adminHandler.GetQuestion)
				adminQuestions.PUT("", adminHandler.UpdateQuestion)
				adminQuestions.DELETE("", adminHandler.DeleteQuestion)
			}

			// Аудирование
			admin.GET("/listening/questions", adminHandler.ListListeningQuestions)
			admin.POST("/listening/audio", audioHandler.Upload)
			admin.DELETE("/listening/audio/:recordingId",
				middleware.ExtractUintParam("recordingId", "recording_id"),
				audioHandler.DeleteRecording)

			// Экспорт результатов
			admin.GET("/results/export", adminHandler.ExportResults)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Ждем SIGINT или SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
