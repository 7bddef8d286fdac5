package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fiberafrica/missioncontrol/internal/inventoryrequest/domain"
	"gorm.io/gorm"
)

const detailColumns = "inventory_requests.*, " +
	"staff.first_name AS technician_first_name, " +
	"staff.surname AS technician_surname, " +
	"staff.email AS technician_email, " +
	"COALESCE(drop_cable.circuit_number, link_build.circuit_number) AS circuit_number, " +
	"COALESCE(drop_cable.site_b_name, link_build.site_b_name) AS site_name"

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func details(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("inventory_requests").
		Select(detailColumns).
		Joins("LEFT JOIN staff ON staff.id = inventory_requests.technician_id").
		Joins("LEFT JOIN drop_cable ON inventory_requests.job_type = 'drop_cable' AND drop_cable.id = inventory_requests.job_id").
		Joins("LEFT JOIN link_build ON inventory_requests.job_type = 'link_build' AND link_build.id = inventory_requests.job_id")
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, req *domain.Request) error {
	return db.WithContext(ctx).Create(req).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Detail, error) {
	var detail domain.Detail
	err := details(ctx, db).Where("inventory_requests.id = ?", id).Take(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (r *repo) FindPending(ctx context.Context, db *gorm.DB, id string) (*domain.Request, error) {
	var req domain.Request
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Where("status = ?", domain.StatusPending).
		Take(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, status domain.Status) ([]*domain.Detail, error) {
	stmt := details(ctx, db)
	if status != "" {
		stmt = stmt.Where("inventory_requests.status = ?", status)
	}
	var rows []*domain.Detail
	if err := stmt.Order("inventory_requests.requested_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListByJob(ctx context.Context, db *gorm.DB, jobType, jobID string) ([]*domain.Detail, error) {
	var rows []*domain.Detail
	err := details(ctx, db).
		Where("inventory_requests.job_id = ?", jobID).
		Where("inventory_requests.job_type = ?", jobType).
		Order("inventory_requests.requested_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListByTechnician(ctx context.Context, db *gorm.DB, technicianID string) ([]*domain.Detail, error) {
	var rows []*domain.Detail
	err := details(ctx, db).
		Where("inventory_requests.technician_id = ?", technicianID).
		Order("inventory_requests.requested_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) CountByStatus(ctx context.Context, db *gorm.DB, status domain.Status) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Request{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *repo) Review(ctx context.Context, db *gorm.DB, id string, status domain.Status, reviewer string, at time.Time, reason *string) (bool, error) {
	values := map[string]any{
		"status":      status,
		"reviewed_at": at,
		"reviewed_by": reviewer,
	}
	if status == domain.StatusRejected {
		if reason != nil {
			values["rejection_reason"] = *reason
		} else {
			values["rejection_reason"] = nil
		}
	}
	res := db.WithContext(ctx).
		Model(&domain.Request{}).
		Where("id = ?", id).
		Where("status = ?", domain.StatusPending).
		Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
