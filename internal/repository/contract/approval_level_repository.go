package contract

import (
	"context"

	"impes-be/internal/entity"
	"impes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ApprovalLevelRepository interface {
	Create(ctx context.Context, level *entity.ApprovalLevel) error
	Update(ctx context.Context, level *entity.ApprovalLevel) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ApprovalLevel, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ApprovalLevel, error)
}
