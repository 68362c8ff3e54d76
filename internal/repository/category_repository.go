package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker/internal/model"
)

// CategoryRepository manages task categories.
type CategoryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db, now: time.Now}
}

// ResolveOrCreate returns the id of the category called name, creating it
// first when it does not exist. Repeated or concurrent calls with the same
// name resolve to the same row: the insert is skipped on a unique-name
// conflict and the row is then read back.
func (r *CategoryRepository) ResolveOrCreate(ctx context.Context, name string) (uint, error) {
	id, err := resolveOrCreate(r.db.WithContext(ctx), name, r.now())
	return id, classify("resolve category", err)
}

// resolveOrCreate runs on db, which may be a transaction handle.
func resolveOrCreate(db *gorm.DB, name string, now time.Time) (uint, error) {
	var existing model.Category
	err := db.Where("name = ?", name).Take(&existing).Error
	switch {
	case err == nil:
		return existing.ID, nil
	case err != gorm.ErrRecordNotFound:
		return 0, err
	}

	category := model.Category{Name: name, CreatedAt: now.Format(model.TimestampLayout)}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&category).Error
	if err != nil {
		return 0, err
	}

	var stored model.Category
	if err := db.Where("name = ?", name).Take(&stored).Error; err != nil {
		return 0, err
	}
	return stored.ID, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).Take(&category).Error; err != nil {
		return nil, classify("find category", err)
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, classify("list categories", err)
	}
	return categories, nil
}
