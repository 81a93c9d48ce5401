package implementation

import (
	"context"
	"errors"

	"impes-be/internal/entity"
	"impes-be/internal/mapper"
	"impes-be/internal/model"
	"impes-be/internal/repository/contract"
	"impes-be/internal/repository/scope"
	"impes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApprovalLevelRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ApprovalLevelMapper
}

func NewApprovalLevelRepository(db *gorm.DB) contract.ApprovalLevelRepository {
	return &ApprovalLevelRepositoryImpl{
		db:     db,
		mapper: mapper.NewApprovalLevelMapper(),
	}
}

func (r *ApprovalLevelRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// withRole resolves the role name with a correlated subquery so unqualified
// specifications stay unambiguous.
func (r *ApprovalLevelRepositoryImpl) withRole(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.ApprovalLevel{}).
		Select("approval_levels.*, COALESCE((SELECT roles.name FROM roles WHERE roles.id = approval_levels.role_id), '') AS role_name")
}

func (r *ApprovalLevelRepositoryImpl) Create(ctx context.Context, level *entity.ApprovalLevel) error {
	m := r.mapper.ToModel(level)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	level.Id = m.Id
	level.CreatedAt = m.CreatedAt
	return nil
}

func (r *ApprovalLevelRepositoryImpl) Update(ctx context.Context, level *entity.ApprovalLevel) error {
	m := r.mapper.ToModel(level)
	res := r.db.WithContext(ctx).
		Model(&model.ApprovalLevel{}).
		Where("id = ?", level.Id).
		Select("level_name", "role_id", "approval_order", "updated_at").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ApprovalLevelRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ApprovalLevel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ApprovalLevelRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ApprovalLevel, error) {
	var row model.ApprovalLevelWithRole
	query := r.applySpecifications(r.withRole(ctx), specs...)
	if err := query.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RowToEntity(&row), nil
}

func (r *ApprovalLevelRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ApprovalLevel, error) {
	var rows []*model.ApprovalLevelWithRole
	query := r.applySpecifications(r.withRole(ctx), specs...)
	if err := query.Scopes(scope.OrderByApprovalOrder).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.RowsToEntities(rows), nil
}
