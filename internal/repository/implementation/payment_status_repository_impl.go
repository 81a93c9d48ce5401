package implementation

import (
	"context"
	"errors"

	"impes-be/internal/entity"
	"impes-be/internal/mapper"
	"impes-be/internal/model"
	"impes-be/internal/repository/contract"
	"impes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatusRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentStatusMapper
}

func NewPaymentStatusRepository(db *gorm.DB) contract.PaymentStatusRepository {
	return &PaymentStatusRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentStatusMapper(),
	}
}

func (r *PaymentStatusRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PaymentStatusRepositoryImpl) Create(ctx context.Context, status *entity.PaymentStatus) error {
	m := r.mapper.ToModel(status)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	status.Id = m.Id
	status.CreatedAt = m.CreatedAt
	return nil
}

func (r *PaymentStatusRepositoryImpl) Update(ctx context.Context, status *entity.PaymentStatus) error {
	m := r.mapper.ToModel(status)
	res := r.db.WithContext(ctx).
		Model(&model.PaymentStatus{}).
		Where("id = ?", status.Id).
		Select("status_name", "description", "code", "approval_level_id", "updated_at").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PaymentStatusRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PaymentStatus{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PaymentStatusRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentStatus, error) {
	var m model.PaymentStatus
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentStatusRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentStatus, error) {
	var models []*model.PaymentStatus
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("status_name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PaymentStatusRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PaymentStatus{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
