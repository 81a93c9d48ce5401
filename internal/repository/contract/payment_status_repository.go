package contract

import (
	"context"

	"impes-be/internal/entity"
	"impes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PaymentStatusRepository interface {
	Create(ctx context.Context, status *entity.PaymentStatus) error
	Update(ctx context.Context, status *entity.PaymentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentStatus, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentStatus, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
