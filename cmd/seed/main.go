package main

import (
	"context"
	"errors"
	"log"

	"conduit/internal/auth"
	"conduit/internal/cache"
	"conduit/internal/config"
	"conduit/internal/db"
	apperrors "conduit/internal/errors"
	"conduit/internal/model"
	"conduit/internal/repository"
	"conduit/internal/service"
)

type seedUser struct {
	Username string
	Email    string
	Password string
	Bio      string
}

type seedArticle struct {
	Author      string
	Title       string
	Description string
	Body        string
	TagList     []string
}

var seedUsers = []seedUser{
	{Username: "jane", Email: "jane@example.com", Password: "password123", Bio: "Writes about Go."},
	{Username: "john", Email: "john@example.com", Password: "password123", Bio: "Reads about Go."},
}

var seedArticles = []seedArticle{
	{
		Author:      "jane",
		Title:       "Hello World",
		Description: "A first article",
		Body:        "This is the body of the first article.",
		TagList:     []string{"intro", "golang"},
	},
	{
		Author:      "jane",
		Title:       "Structuring Go Services",
		Description: "Layers and repositories",
		Body:        "Handlers call services, services call repositories.",
		TagList:     []string{"golang", "architecture"},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Article{}, &model.Tag{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	articleRepo := repository.NewArticleRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	userService := service.NewUserService(userRepo, jwtService, cacheClient, cfg.BcryptCost)
	tagService := service.NewTagService(tagRepo, cacheClient)
	articleService := service.NewArticleService(articleRepo, userRepo, tagService)

	ctx := context.Background()
	userIDs := map[string]uint{}

	for _, su := range seedUsers {
		user, err := userService.Register(ctx, su.Username, su.Email, su.Password)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserExists) {
				existing, err := userRepo.FindByUsername(ctx, su.Username)
				if err != nil {
					log.Fatalf("Failed to load existing user %s: %v", su.Username, err)
				}
				userIDs[su.Username] = existing.ID
				log.Printf("User %s already present, skipping", su.Username)
				continue
			}
			log.Fatalf("Failed to seed user %s: %v", su.Username, err)
		}
		if su.Bio != "" {
			if _, err := userService.UpdateUser(ctx, user.ID, service.ProfileUpdate{Bio: &su.Bio}); err != nil {
				log.Fatalf("Failed to set bio for %s: %v", su.Username, err)
			}
		}
		userIDs[su.Username] = user.ID
		log.Printf("Seeded user %s", su.Username)
	}

	for _, sa := range seedArticles {
		authorID, ok := userIDs[sa.Author]
		if !ok {
			log.Fatalf("Unknown seed author %s", sa.Author)
		}
		article, err := articleService.Create(ctx, authorID, service.ArticleInput{
			Title:       sa.Title,
			Description: sa.Description,
			Body:        sa.Body,
			TagList:     sa.TagList,
		})
		if err != nil {
			log.Fatalf("Failed to seed article %q: %v", sa.Title, err)
		}
		log.Printf("Seeded article %q as %s", sa.Title, article.Slug)

		// Second seed user favorites everything by the first
		if readerID, ok := userIDs["john"]; ok && sa.Author == "jane" {
			if _, err := articleService.Favorite(ctx, article.Slug, readerID); err != nil {
				log.Fatalf("Failed to favorite %q: %v", sa.Title, err)
			}
		}
	}

	log.Println("Seed complete")
}
