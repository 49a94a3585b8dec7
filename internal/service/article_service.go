package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "conduit/internal/errors"
	"conduit/internal/model"
	"conduit/internal/repository"
)

// slugSuffixSpace bounds the random base-36 slug suffix (36^6).
const slugSuffixSpace = 36 * 36 * 36 * 36 * 36 * 36

// ListQuery carries the composable article listing filters.
type ListQuery struct {
	Author    string
	Tag       string
	Favorited string
	Limit     *int
	Offset    *int
}

// ArticleInput carries the fields of a new article.
type ArticleInput struct {
	Title       string
	Description string
	Body        string
	TagList     []string
}

// ArticleUpdate carries the optional fields of an article update. Nil fields
// are left untouched; the slug is stable across updates.
type ArticleUpdate struct {
	Title       *string
	Description *string
	Body        *string
	TagList     []string
}

// ArticleService handles article CRUD, listing, and the favorites relation.
type ArticleService interface {
	List(ctx context.Context, query ListQuery) ([]model.Article, int64, error)
	Create(ctx context.Context, authorID uint, input ArticleInput) (*model.Article, error)
	GetBySlug(ctx context.Context, slug string) (*model.Article, error)
	Update(ctx context.Context, slug string, input ArticleUpdate, userID uint) (*model.Article, error)
	Delete(ctx context.Context, slug string, userID uint) error
	Favorite(ctx context.Context, slug string, userID uint) (*model.Article, error)
	Unfavorite(ctx context.Context, slug string, userID uint) (*model.Article, error)
}

type articleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	tags     TagService
}

// NewArticleService builds an ArticleService.
func NewArticleService(articles repository.ArticleRepository, users repository.UserRepository, tags TagService) ArticleService {
	return &articleService{
		articles: articles,
		users:    users,
		tags:     tags,
	}
}

// Slug derives a URL-safe identifier from a title plus a random base-36
// suffix. Collisions are only probabilistically avoided; the unique index on
// the column backstops.
func Slug(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	return slug + "_" + strconv.FormatInt(rand.Int63n(slugSuffixSpace), 36)
}

// List returns the filtered page, newest first, plus the total matching
// count. An unknown author or favoriting user yields an empty result.
func (s *articleService) List(ctx context.Context, query ListQuery) ([]model.Article, int64, error) {
	filter := repository.ListFilter{
		Tag:    query.Tag,
		Limit:  query.Limit,
		Offset: query.Offset,
	}

	if query.Author != "" {
		author, err := s.users.FindByUsername(ctx, query.Author)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []model.Article{}, 0, nil
			}
			return nil, 0, fmt.Errorf("resolve author: %w", err)
		}
		filter.AuthorID = &author.ID
	}

	if query.Favorited != "" {
		user, err := s.users.FindByUsername(ctx, query.Favorited)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []model.Article{}, 0, nil
			}
			return nil, 0, fmt.Errorf("resolve favoriting user: %w", err)
		}
		ids, err := s.users.FavoriteArticleIDs(ctx, user.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("load favorite ids: %w", err)
		}
		if len(ids) == 0 {
			return []model.Article{}, 0, nil
		}
		filter.IDs = ids
	}

	return s.articles.List(ctx, filter)
}

// Create persists a new article owned by authorID with a fresh slug, and
// records any new tag names.
func (s *articleService) Create(ctx context.Context, authorID uint, input ArticleInput) (*model.Article, error) {
	article := &model.Article{
		Slug:        Slug(input.Title),
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		TagList:     model.TagList(input.TagList),
		AuthorID:    authorID,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	if err := s.tags.Ensure(ctx, input.TagList); err != nil {
		return nil, fmt.Errorf("record tags: %w", err)
	}
	return s.GetBySlug(ctx, article.Slug)
}

// GetBySlug resolves an article with its author.
func (s *articleService) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	article, err := s.articles.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

// Update applies a partial update after existence and ownership checks, then
// re-reads the article.
func (s *articleService) Update(ctx context.Context, slug string, input ArticleUpdate, userID uint) (*model.Article, error) {
	article, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != userID {
		return nil, apperrors.ErrNotArticleAuthor
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Body != nil {
		fields["body"] = *input.Body
	}
	if input.TagList != nil {
		fields["tag_list"] = model.TagList(input.TagList)
		if err := s.tags.Ensure(ctx, input.TagList); err != nil {
			return nil, fmt.Errorf("record tags: %w", err)
		}
	}
	if len(fields) > 0 {
		if err := s.articles.UpdateFields(ctx, article.ID, fields); err != nil {
			return nil, fmt.Errorf("update article: %w", err)
		}
	}
	return s.GetBySlug(ctx, slug)
}

// Delete removes an article after existence and ownership checks.
func (s *articleService) Delete(ctx context.Context, slug string, userID uint) error {
	article, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if article.AuthorID != userID {
		return apperrors.ErrNotArticleAuthor
	}
	return s.articles.DeleteBySlug(ctx, slug)
}

// Favorite marks the article as favorited by userID. A repeat call is a
// no-op; the counter moves only when membership changes.
func (s *articleService) Favorite(ctx context.Context, slug string, userID uint) (*model.Article, error) {
	article, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if _, err := s.articles.AddFavorite(ctx, userID, article.ID); err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}
	return s.GetBySlug(ctx, slug)
}

// Unfavorite removes the favorite. Removing a non-favorite is a no-op.
func (s *articleService) Unfavorite(ctx context.Context, slug string, userID uint) (*model.Article, error) {
	article, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if _, err := s.articles.RemoveFavorite(ctx, userID, article.ID); err != nil {
		return nil, fmt.Errorf("remove favorite: %w", err)
	}
	return s.GetBySlug(ctx, slug)
}
