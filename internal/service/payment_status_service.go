package service

import (
	"context"
	"time"

	"impes-be/internal/dto"
	"impes-be/internal/entity"
	"impes-be/internal/pkg/apperr"
	"impes-be/internal/pkg/logger"
	"impes-be/internal/repository/specification"
	"impes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPaymentStatusService interface {
	GetAll(ctx context.Context) ([]*dto.PaymentStatusResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.PaymentStatusResponse, error)
	Create(ctx context.Context, req *dto.CreatePaymentStatusRequest) (*dto.PaymentStatusResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePaymentStatusRequest) (*dto.PaymentStatusResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type paymentStatusService struct {
	uowFactory unitofwork.RepositoryFactory
	registry   IWorkflowRegistry
	logger     logger.ILogger
}

func NewPaymentStatusService(
	uowFactory unitofwork.RepositoryFactory,
	registry IWorkflowRegistry,
	log logger.ILogger,
) IPaymentStatusService {
	return &paymentStatusService{
		uowFactory: uowFactory,
		registry:   registry,
		logger:     log,
	}
}

func toPaymentStatusResponse(status *entity.PaymentStatus) *dto.PaymentStatusResponse {
	return &dto.PaymentStatusResponse{
		StatusId:        status.Id,
		StatusName:      status.StatusName,
		Description:     status.Description,
		Code:            string(status.Code),
		ApprovalLevelId: status.ApprovalLevelId,
		CreatedAt:       status.CreatedAt,
	}
}

func (s *paymentStatusService) GetAll(ctx context.Context) ([]*dto.PaymentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	statuses, err := uow.PaymentStatusRepository().FindAll(ctx)
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to list payment statuses")
	}

	result := make([]*dto.PaymentStatusResponse, 0, len(statuses))
	for _, status := range statuses {
		result = append(result, toPaymentStatusResponse(status))
	}
	return result, nil
}

func (s *paymentStatusService) Show(ctx context.Context, id uuid.UUID) (*dto.PaymentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	status, err := uow.PaymentStatusRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to load payment status")
	}
	if status == nil {
		return nil, apperr.NotFound("payment status", id)
	}
	return toPaymentStatusResponse(status), nil
}

// checkBinding enforces that only review statuses carry a level, and that
// the level exists.
func (s *paymentStatusService) checkBinding(ctx context.Context, uow unitofwork.UnitOfWork, code entity.StatusCode, levelId *uuid.UUID) error {
	if !code.Valid() {
		return apperr.Validation("unknown status code %q", code)
	}
	if code == entity.StatusCodeAwaitingReview && levelId == nil {
		return apperr.Validation("approvalLevelId is required for AWAITING_REVIEW statuses")
	}
	if code != entity.StatusCodeAwaitingReview && code != entity.StatusCodeNone && levelId != nil {
		return apperr.Validation("only AWAITING_REVIEW statuses can be bound to an approval level")
	}
	if levelId == nil {
		return nil
	}

	level, err := uow.ApprovalLevelRepository().FindOne(ctx, specification.ByID{ID: *levelId})
	if err != nil {
		return apperr.FromStorage(err, "failed to load approval level")
	}
	if level == nil {
		return apperr.NotFound("approval level", *levelId)
	}
	return nil
}

func (s *paymentStatusService) Create(ctx context.Context, req *dto.CreatePaymentStatusRequest) (*dto.PaymentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	code := entity.StatusCode(req.Code)
	if err := s.checkBinding(ctx, uow, code, req.ApprovalLevelId); err != nil {
		return nil, err
	}

	status := &entity.PaymentStatus{
		StatusName:      req.StatusName,
		Description:     req.Description,
		Code:            code,
		ApprovalLevelId: req.ApprovalLevelId,
	}
	if err := uow.PaymentStatusRepository().Create(ctx, status); err != nil {
		return nil, apperr.FromStorage(err, "failed to create payment status")
	}

	s.registry.Invalidate(ctx)
	s.logger.Info("REGISTRY", "Payment status created", map[string]interface{}{
		"status_id": status.Id,
		"code":      string(status.Code),
	})

	return toPaymentStatusResponse(status), nil
}

func (s *paymentStatusService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePaymentStatusRequest) (*dto.PaymentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	code := entity.StatusCode(req.Code)
	if err := s.checkBinding(ctx, uow, code, req.ApprovalLevelId); err != nil {
		return nil, err
	}

	now := time.Now()
	status := &entity.PaymentStatus{
		Id:              id,
		StatusName:      req.StatusName,
		Description:     req.Description,
		Code:            code,
		ApprovalLevelId: req.ApprovalLevelId,
		UpdatedAt:       &now,
	}
	if err := uow.PaymentStatusRepository().Update(ctx, status); err != nil {
		return nil, apperr.FromStorage(err, "failed to update payment status")
	}

	s.registry.Invalidate(ctx)
	s.logger.Info("REGISTRY", "Payment status updated", map[string]interface{}{"status_id": id})

	return s.Show(ctx, id)
}

func (s *paymentStatusService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperr.FromStorage(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	inUse, err := uow.PaymentRequestRepository().Count(ctx, specification.ByPaymentStatusID{StatusID: id})
	if err != nil {
		return apperr.FromStorage(err, "failed to check payment status usage")
	}
	if inUse > 0 {
		return apperr.Conflict("payment status is in use by %d payment request(s)", inUse)
	}

	if err := uow.PaymentStatusRepository().Delete(ctx, id); err != nil {
		return apperr.FromStorage(err, "failed to delete payment status")
	}
	if err := uow.Commit(); err != nil {
		return apperr.FromStorage(err, "failed to commit payment status delete")
	}

	s.registry.Invalidate(ctx)
	s.logger.Info("REGISTRY", "Payment status deleted", map[string]interface{}{"status_id": id})
	return nil
}
