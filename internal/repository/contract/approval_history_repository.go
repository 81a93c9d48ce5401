package contract

import (
	"context"

	"impes-be/internal/entity"

	"github.com/google/uuid"
)

// ApprovalHistoryRepository has no update or delete on purpose.
type ApprovalHistoryRepository interface {
	Append(ctx context.Context, entry *entity.ApprovalHistory) error
	FindByRequestId(ctx context.Context, requestId uuid.UUID) ([]*entity.ApprovalHistory, error)
	CountByRequestId(ctx context.Context, requestId uuid.UUID) (int64, error)
}
