package implementation

import (
	"context"
	"errors"

	"impes-be/internal/entity"
	"impes-be/internal/mapper"
	"impes-be/internal/model"
	"impes-be/internal/repository/contract"
	"impes-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PaymentDetailsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentDetailsMapper
}

func NewPaymentDetailsRepository(db *gorm.DB) contract.PaymentDetailsRepository {
	return &PaymentDetailsRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentDetailsMapper(),
	}
}

func (r *PaymentDetailsRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PaymentDetailsRepositoryImpl) Create(ctx context.Context, details *entity.PaymentDetails) error {
	m := r.mapper.ToModel(details)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*details = *r.mapper.ToEntity(m)
	return nil
}

// Update only touches the settlement fields; request, payer and paid date are
// fixed once recorded.
func (r *PaymentDetailsRepositoryImpl) Update(ctx context.Context, details *entity.PaymentDetails) error {
	m := r.mapper.ToModel(details)
	res := r.db.WithContext(ctx).
		Model(&model.PaymentDetails{}).
		Where("id = ?", details.Id).
		Select("payment_mode", "bank_name", "account_number", "transaction_id", "notes", "updated_at").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PaymentDetailsRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentDetails, error) {
	var m model.PaymentDetails
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentDetailsRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PaymentDetails{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
