package repository

import (
	"hr-biometric-backend/internal/model"

	"gorm.io/gorm"
)

type SyncRunRepository interface {
	Create(run *model.SyncRun) error
	Finalize(run *model.SyncRun) error
	GetRecent(companyID uint, limit int) ([]model.SyncRun, error)
}

type syncRunRepository struct {
	db *gorm.DB
}

func NewSyncRunRepository(db *gorm.DB) SyncRunRepository {
	return &syncRunRepository{db}
}

func (r *syncRunRepository) Create(run *model.SyncRun) error {
	return r.db.Create(run).Error
}

func (r *syncRunRepository) Finalize(run *model.SyncRun) error {
	return r.db.Save(run).Error
}

func (r *syncRunRepository) GetRecent(companyID uint, limit int) ([]model.SyncRun, error) {
	if limit <= 0 {
		limit = 50
	}
	var runs []model.SyncRun
	q := r.db.Order("created_at desc").Limit(limit)
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}
	err := q.Find(&runs).Error
	return runs, err
}
