package repository

import (
	"context"

	"gorm.io/gorm"

	"conduit/internal/model"
)

// ListFilter narrows an article listing. Zero-valued fields are skipped, so
// filters compose with AND semantics.
type ListFilter struct {
	AuthorID *uint  // exact author match
	Tag      string // substring match against the stored tag list
	IDs      []uint // restrict to these article ids (favorited filter)
	Limit    *int
	Offset   *int
}

// ArticleRepository defines article persistence operations, including the
// favorites relation and its denormalized counter.
type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	FindBySlug(ctx context.Context, slug string) (*model.Article, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	DeleteBySlug(ctx context.Context, slug string) error
	List(ctx context.Context, filter ListFilter) ([]model.Article, int64, error)
	AddFavorite(ctx context.Context, userID, articleID uint) (bool, error)
	RemoveFavorite(ctx context.Context, userID, articleID uint) (bool, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository builds a GORM-backed article repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) FindBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var article model.Article
	err := r.db.WithContext(ctx).Preload("Author").
		Where("slug = ?", slug).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *articleRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&model.Article{}).Error
}

// List returns the filtered page ordered newest first, plus the total count
// of matching rows regardless of limit/offset.
func (r *articleRepository) List(ctx context.Context, filter ListFilter) ([]model.Article, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Article{})

	if filter.AuthorID != nil {
		base = base.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Tag != "" {
		base = base.Where("tag_list LIKE ?", "%"+filter.Tag+"%")
	}
	if len(filter.IDs) > 0 {
		base = base.Where("id IN ?", filter.IDs)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := base.Session(&gorm.Session{}).Preload("Author").Order("created_at DESC")
	if filter.Limit != nil {
		page = page.Limit(*filter.Limit)
	}
	if filter.Offset != nil {
		page = page.Offset(*filter.Offset)
	}

	var articles []model.Article
	if err := page.Find(&articles).Error; err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// AddFavorite inserts the favorite row and bumps favorites_count in one
// transaction. Returns false without writing when already favorited.
func (r *articleRepository) AddFavorite(ctx context.Context, userID, articleID uint) (bool, error) {
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table("user_favorites").
			Where("user_id = ? AND article_id = ?", userID, articleID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Exec(
			"INSERT INTO user_favorites (user_id, article_id) VALUES (?, ?)",
			userID, articleID,
		).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Article{}).
			Where("id = ?", articleID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count + ?", 1)).Error; err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

// RemoveFavorite deletes the favorite row and decrements favorites_count in
// one transaction. Returns false without writing when not favorited.
func (r *articleRepository) RemoveFavorite(ctx context.Context, userID, articleID uint) (bool, error) {
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			"DELETE FROM user_favorites WHERE user_id = ? AND article_id = ?",
			userID, articleID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Model(&model.Article{}).
			Where("id = ? AND favorites_count > 0", articleID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count - ?", 1)).Error; err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}
