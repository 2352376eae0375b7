package storage

import (
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) SaveRun(run *DigestRun) error {
	return r.db.Create(run).Error
}

func (r *Repository) RecentRuns(limit int) ([]DigestRun, error) {
	var runs []DigestRun
	err := r.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

func (r *Repository) LastDelivered() (*DigestRun, error) {
	var run DigestRun
	err := r.db.Where("delivered = ?", true).Order("started_at DESC").First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}
