package repository

import (
	"fmt"

	"gorm.io/gorm"

	"docchat/internal/model"
)

type QARecordRepository struct {
	db *gorm.DB
}

func NewQARecordRepository(db *gorm.DB) *QARecordRepository {
	return &QARecordRepository{db: db}
}

func (r *QARecordRepository) Create(rec *model.QARecord) error {
	if err := r.db.Create(rec).Error; err != nil {
		return fmt.Errorf("create qa record failed: %w", err)
	}
	return nil
}

func (r *QARecordRepository) ListByDocumentID(documentID string) ([]model.QARecord, error) {
	var list []model.QARecord
	if err := r.db.Where("document_id = ?", documentID).Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list qa records failed: %w", err)
	}
	return list, nil
}
