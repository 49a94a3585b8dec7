package main

import (
	"log"
	"net/http"

	_ "conduit/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"conduit/internal/auth"
	"conduit/internal/cache"
	"conduit/internal/config"
	"conduit/internal/db"
	"conduit/internal/handler"
	"conduit/internal/model"
	"conduit/internal/repository"
	"conduit/internal/router"
	"conduit/internal/service"
)

// @title Conduit API
// @version 1.0
// @description Blogging API: registration, login, articles, tags, and favorites with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Type "Token" followed by a space and the JWT.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Article{},
		&model.Tag{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	articleRepo := repository.NewArticleRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	userService := service.NewUserService(userRepo, jwtService, cacheClient, cfg.BcryptCost)
	tagService := service.NewTagService(tagRepo, cacheClient)
	articleService := service.NewArticleService(articleRepo, userRepo, tagService)

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	articleHandler := handler.NewArticleHandler(articleService)
	tagHandler := handler.NewTagHandler(tagService)

	router.Register(e, jwtService, userService, userHandler, articleHandler, tagHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
