package repository

import (
	"context"
	"errors"

	"github.com/fiberafrica/missioncontrol/internal/document/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, doc *domain.Document) error {
	return db.WithContext(ctx).Create(doc).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Document, error) {
	return r.findOne(db.WithContext(ctx).Where("id = ?", id))
}

func (r *repo) FindByPath(ctx context.Context, db *gorm.DB, path string) (*domain.Document, error) {
	return r.findOne(db.WithContext(ctx).Where("file_path = ?", path).Order("created_at desc"))
}

func (r *repo) findOne(stmt *gorm.DB) (*domain.Document, error) {
	var doc domain.Document
	if err := stmt.Take(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *repo) ListByJob(ctx context.Context, db *gorm.DB, jobType, jobID string) ([]*domain.Document, error) {
	column := "drop_cable_job_id"
	if jobType == "link_build" {
		column = "link_build_job_id"
	}
	var docs []*domain.Document
	err := db.WithContext(ctx).
		Where("job_type = ?", jobType).
		Where(column+" = ?", jobID).
		Order("created_at desc").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Document{}).Error
}
