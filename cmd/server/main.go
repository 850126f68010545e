package main

import (
	"context"
	"log"
	"os"

	_ "ordo/docs" // swagger docs

	"ordo/internal/auth"
	"ordo/internal/cache"
	"ordo/internal/config"
	"ordo/internal/db"
	"ordo/internal/handler"
	"ordo/internal/mail"
	"ordo/internal/maintenance"
	"ordo/internal/model"
	"ordo/internal/repository"
	"ordo/internal/router"
	"ordo/internal/service"
	"ordo/internal/storage"
)

// @title Ordo API
// @version 1.0
// @description Meal plan backend for residential chapters: menus, attendance, reviews, late plates, and analytics.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Recommendation{},
			&model.LatePlate{},
			&model.MealAttendance{},
			&model.Review{},
			&model.Meal{},
			&model.PendingRegistration{},
			&model.User{},
			&model.Chapter{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(
		&model.Chapter{},
		&model.User{},
		&model.PendingRegistration{},
		&model.Meal{},
		&model.Review{},
		&model.MealAttendance{},
		&model.LatePlate{},
		&model.Recommendation{},
	); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	var mailer mail.Mailer
	if cfg.MailFrom != "" {
		sesMailer, err := mail.NewSESMailer(ctx, cfg.AWSRegion, cfg.MailFrom, cfg.FrontendURL)
		if err != nil {
			log.Fatalf("ses init: %v", err)
		}
		mailer = sesMailer
	} else {
		log.Println("MAIL_FROM not set, logging emails instead of sending")
		mailer = mail.LogMailer{}
	}

	var images storage.ImageStore
	uploadDir := ""
	if cfg.MinioEndpoint != "" {
		minioStore, err := storage.NewMinioStore(ctx, storage.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		})
		if err != nil {
			log.Fatalf("minio init: %v", err)
		}
		images = minioStore
	} else {
		localStore, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("local storage init: %v", err)
		}
		images = localStore
		uploadDir = cfg.UploadDir
	}

	repos := repository.NewRegistry(gormDB)

	authService := service.NewAuthService(repos, jwtService, mailer)
	chapterService := service.NewChapterService(repos)
	userService := service.NewUserService(repos)
	mealService := service.NewMealService(repos, cacheClient, images)
	reviewService := service.NewReviewService(repos)
	attendanceService := service.NewAttendanceService(repos)
	latePlateService := service.NewLatePlateService(repos)
	analyticsService := service.NewAnalyticsService(repos, cacheClient)
	recommendationService := service.NewRecommendationService(repos)

	e := router.New(router.Handlers{
		Auth:           handler.NewAuthHandler(authService),
		User:           handler.NewUserHandler(userService),
		Chapter:        handler.NewChapterHandler(chapterService),
		Meal:           handler.NewMealHandler(mealService),
		Review:         handler.NewReviewHandler(reviewService),
		Attendance:     handler.NewAttendanceHandler(attendanceService),
		LatePlate:      handler.NewLatePlateHandler(latePlateService),
		Analytics:      handler.NewAnalyticsHandler(analyticsService),
		Recommendation: handler.NewRecommendationHandler(recommendationService),
	}, router.Options{
		JWTService: jwtService,
		Users:      repos.Users,
		UploadDir:  uploadDir,
	})

	purger := maintenance.NewPurger(repos.LatePlates)
	if err := purger.Start(); err != nil {
		log.Fatalf("schedule late plate purge: %v", err)
	}
	defer purger.Stop()

	log.Printf("starting server on :%s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
