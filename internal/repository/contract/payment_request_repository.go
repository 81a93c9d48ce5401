package contract

import (
	"context"

	"impes-be/internal/entity"
	"impes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PaymentRequestRepository interface {
	Create(ctx context.Context, request *entity.PaymentRequest) error
	CreateMilestones(ctx context.Context, milestones []*entity.PaymentRequestMilestone) error
	CreateDocuments(ctx context.Context, documents []*entity.PaymentRequestDocument) error
	CreateInspectionTeam(ctx context.Context, members []*entity.InspectionMember) error
	CreateItemApproval(ctx context.Context, approval *entity.ItemApproval) error

	// CompareAndSwapState moves the request to the given status and level
	// only if its version, status and level still match current. It reports
	// whether exactly one row changed; on success current is updated in place.
	CompareAndSwapState(ctx context.Context, current *entity.PaymentRequest, statusId uuid.UUID, levelId *uuid.UUID) (bool, error)
	Void(ctx context.Context, current *entity.PaymentRequest) (bool, error)

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentRequest, error)
	FindSummary(ctx context.Context, specs ...specification.Specification) (*entity.PaymentRequestSummary, error)
	FindSummaries(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentRequestSummary, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	FindMilestones(ctx context.Context, requestId uuid.UUID) ([]*entity.PaymentRequestMilestone, error)
	FindDocuments(ctx context.Context, requestId uuid.UUID) ([]*entity.PaymentRequestDocument, error)
	FindInspectionTeam(ctx context.Context, requestId uuid.UUID) ([]*entity.InspectionMember, error)
	FindItemApprovals(ctx context.Context, requestId uuid.UUID) ([]*entity.ItemApproval, error)
}
