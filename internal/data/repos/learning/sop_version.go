package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
)

type SOPVersionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, version *types.SOPVersion) (*types.SOPVersion, error)
	GetByID(ctx context.Context, tx *gorm.DB, versionID uuid.UUID) (*types.SOPVersion, error)
	GetBySOPID(ctx context.Context, tx *gorm.DB, sopID uuid.UUID) ([]*types.SOPVersion, error)
	MaxVersionBySOPID(ctx context.Context, tx *gorm.DB, sopID uuid.UUID) (int, error)
	LatestPublishedBySOPID(ctx context.Context, tx *gorm.DB, sopID uuid.UUID) (*types.SOPVersion, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, updates map[string]any) error
}

type sopVersionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSOPVersionRepo(db *gorm.DB, baseLog *logger.Logger) SOPVersionRepo {
	return &sopVersionRepo{db: db, log: baseLog.With("repo", "SOPVersionRepo")}
}

func (r *sopVersionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *sopVersionRepo) Create(ctx context.Context, tx *gorm.DB, version *types.SOPVersion) (*types.SOPVersion, error) {
	if err := r.conn(tx).WithContext(ctx).Create(version).Error; err != nil {
		return nil, err
	}
	return version, nil
}

func (r *sopVersionRepo) GetByID(ctx context.Context, tx *gorm.DB, versionID uuid.UUID) (*types.SOPVersion, error) {
	var result types.SOPVersion
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", versionID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *sopVersionRepo) GetBySOPID(ctx context.Context, tx *gorm.DB, sopID uuid.UUID) ([]*types.SOPVersion, error) {
	var results []*types.SOPVersion
	if err := r.conn(tx).WithContext(ctx).
		Where("sop_id = ?", sopID).
		Order("version ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sopVersionRepo) MaxVersionBySOPID(ctx context.Context, tx *gorm.DB, sopID uuid.UUID) (int, error) {
	var max int
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.SOPVersion{}).
		Where("sop_id = ?", sopID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

func (r *sopVersionRepo) LatestPublishedBySOPID(ctx context.Context, tx *gorm.DB, sopID uuid.UUID) (*types.SOPVersion, error) {
	var result types.SOPVersion
	if err := r.conn(tx).WithContext(ctx).
		Where("sop_id = ? AND published_at IS NOT NULL", sopID).
		Order("version DESC").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *sopVersionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, updates map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.SOPVersion{}).
		Where("id = ?", versionID).
		Updates(updates).Error
}
