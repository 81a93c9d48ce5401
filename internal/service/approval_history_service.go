package service

import (
	"context"

	"impes-be/internal/dto"
	"impes-be/internal/pkg/apperr"
	"impes-be/internal/repository/specification"
	"impes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IApprovalHistoryService only reads. Entries are appended by the services
// that change request state, inside their own transactions.
type IApprovalHistoryService interface {
	List(ctx context.Context, requestId uuid.UUID) ([]*dto.HistoryEntryResponse, error)
}

type approvalHistoryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewApprovalHistoryService(uowFactory unitofwork.RepositoryFactory) IApprovalHistoryService {
	return &approvalHistoryService{uowFactory: uowFactory}
}

func (s *approvalHistoryService) List(ctx context.Context, requestId uuid.UUID) ([]*dto.HistoryEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.PaymentRequestRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to load payment request")
	}
	if request == nil {
		return nil, apperr.NotFound("payment request", requestId)
	}

	entries, err := uow.ApprovalHistoryRepository().FindByRequestId(ctx, requestId)
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to load approval history")
	}

	result := make([]*dto.HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, toHistoryEntryResponse(entry))
	}
	return result, nil
}
