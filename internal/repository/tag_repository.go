package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"conduit/internal/model"
)

// TagRepository defines tag persistence operations.
type TagRepository interface {
	List(ctx context.Context) ([]model.Tag, error)
	UpsertNames(ctx context.Context, names []string) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository builds a GORM-backed tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// UpsertNames inserts any tag names not yet present, leaving existing rows alone.
func (r *tagRepository) UpsertNames(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		tags = append(tags, model.Tag{Name: name})
	}
	if len(tags) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&tags).Error
}
