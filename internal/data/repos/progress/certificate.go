package progress

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type CertificateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, certificate *types.Certificate) (*types.Certificate, error)
	GetByID(ctx context.Context, tx *gorm.DB, certificateID uuid.UUID) (*types.Certificate, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Certificate, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Certificate, error)
}

type certificateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCertificateRepo(db *gorm.DB, baseLog *logger.Logger) CertificateRepo {
	return &certificateRepo{db: db, log: baseLog.With("repo", "CertificateRepo")}
}

func (r *certificateRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *certificateRepo) Create(ctx context.Context, tx *gorm.DB, certificate *types.Certificate) (*types.Certificate, error) {
	if err := r.conn(tx).WithContext(ctx).Create(certificate).Error; err != nil {
		return nil, err
	}
	return certificate, nil
}

func (r *certificateRepo) GetByID(ctx context.Context, tx *gorm.DB, certificateID uuid.UUID) (*types.Certificate, error) {
	var result types.Certificate
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", certificateID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *certificateRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Certificate, error) {
	var result types.Certificate
	if err := r.conn(tx).WithContext(ctx).
		Where("code = ?", code).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *certificateRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Certificate, error) {
	var results []*types.Certificate
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("issued_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
