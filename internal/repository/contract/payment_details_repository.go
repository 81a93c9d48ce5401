package contract

import (
	"context"

	"impes-be/internal/entity"
	"impes-be/internal/repository/specification"
)

type PaymentDetailsRepository interface {
	Create(ctx context.Context, details *entity.PaymentDetails) error
	Update(ctx context.Context, details *entity.PaymentDetails) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentDetails, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
