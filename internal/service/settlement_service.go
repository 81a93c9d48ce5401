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

type ISettlementService interface {
	RecordPayment(ctx context.Context, principal *entity.Principal, requestId uuid.UUID, req *dto.RecordPaymentRequest) (*dto.PaymentDetailsResponse, error)
	UpdatePaymentDetails(ctx context.Context, principal *entity.Principal, requestId uuid.UUID, req *dto.UpdatePaymentDetailsRequest) (*dto.PaymentDetailsResponse, error)
}

type settlementService struct {
	uowFactory unitofwork.RepositoryFactory
	registry   IWorkflowRegistry
	publisher  IPaymentEventPublisher
	logger     logger.ILogger
}

func NewSettlementService(
	uowFactory unitofwork.RepositoryFactory,
	registry IWorkflowRegistry,
	publisher IPaymentEventPublisher,
	log logger.ILogger,
) ISettlementService {
	return &settlementService{
		uowFactory: uowFactory,
		registry:   registry,
		publisher:  publisher,
		logger:     log,
	}
}

// RecordPayment settles an approved request exactly once.
func (s *settlementService) RecordPayment(ctx context.Context, principal *entity.Principal, requestId uuid.UUID, req *dto.RecordPaymentRequest) (*dto.PaymentDetailsResponse, error) {
	if req.PaymentMode == "" {
		return nil, apperr.Validation("paymentMode is required")
	}

	table, err := s.registry.Table(ctx)
	if err != nil {
		return nil, err
	}
	paid, err := table.StatusFor(entity.StatusCodePaid)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperr.FromStorage(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	current, err := uow.PaymentRequestRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to load payment request")
	}
	if current == nil {
		return nil, apperr.NotFound("payment request", requestId)
	}
	if table.Is(current.PaymentStatusId, entity.StatusCodePaid) {
		return nil, apperr.Conflict("payment already recorded for request %s", requestId)
	}
	if !table.Is(current.PaymentStatusId, entity.StatusCodeApprovedForPayment) {
		return nil, apperr.InvalidTransition("payment can only be recorded for requests approved for payment")
	}

	details := &entity.PaymentDetails{
		RequestId:     requestId,
		PaymentMode:   req.PaymentMode,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		TransactionId: req.TransactionId,
		Notes:         req.Notes,
		PaidByUserId:  principal.UserId,
		PaidAt:        time.Now().UTC(),
	}
	if err := uow.PaymentDetailsRepository().Create(ctx, details); err != nil {
		storageErr := apperr.FromStorage(err, "failed to record payment details")
		if apperr.Is(storageErr, apperr.KindConflict) {
			return nil, apperr.Conflict("payment already recorded for request %s", requestId)
		}
		return nil, storageErr
	}

	fromStatus, fromLevel := current.PaymentStatusId, current.CurrentApprovalLevelId
	swapped, err := uow.PaymentRequestRepository().CompareAndSwapState(ctx, current, paid.Id, nil)
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to update payment request")
	}
	if !swapped {
		return nil, apperr.OptimisticConflict("payment request", requestId)
	}

	err = uow.ApprovalHistoryRepository().Append(ctx, &entity.ApprovalHistory{
		RequestId:      requestId,
		Action:         entity.HistoryActionPaymentRecorded,
		ActionByUserId: principal.UserId,
		Notes:          req.Notes,
		Transition: entity.HistoryTransition{
			FromStatusId: &fromStatus,
			ToStatusId:   &paid.Id,
			FromLevelId:  fromLevel,
		},
	})
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to record settlement history")
	}

	if err := uow.Commit(); err != nil {
		return nil, apperr.FromStorage(err, "failed to commit settlement")
	}

	s.logger.Info("SETTLEMENT", "Payment recorded", map[string]interface{}{
		"request_id":     requestId,
		"payment_mode":   details.PaymentMode,
		"transaction_id": details.TransactionId,
		"user_id":        principal.UserId,
	})
	s.publisher.PublishPaymentRecorded(ctx, current, details)

	res := toPaymentDetailsResponse(details)
	res.Status = paid.StatusName
	return res, nil
}

// UpdatePaymentDetails edits the settlement record only; the request's
// status is untouched.
func (s *settlementService) UpdatePaymentDetails(ctx context.Context, principal *entity.Principal, requestId uuid.UUID, req *dto.UpdatePaymentDetailsRequest) (*dto.PaymentDetailsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.PaymentRequestRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to load payment request")
	}
	if request == nil {
		return nil, apperr.NotFound("payment request", requestId)
	}

	details, err := uow.PaymentDetailsRepository().FindOne(ctx, specification.ByRequestID{RequestID: requestId})
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to load payment details")
	}
	if details == nil {
		return nil, apperr.NotFound("payment details", requestId)
	}

	now := time.Now()
	details.PaymentMode = req.PaymentMode
	details.BankName = req.BankName
	details.AccountNumber = req.AccountNumber
	details.TransactionId = req.TransactionId
	details.Notes = req.Notes
	details.UpdatedAt = &now

	if err := uow.PaymentDetailsRepository().Update(ctx, details); err != nil {
		return nil, apperr.FromStorage(err, "failed to update payment details")
	}

	s.logger.Info("SETTLEMENT", "Payment details updated", map[string]interface{}{
		"request_id": requestId,
		"user_id":    principal.UserId,
	})
	return toPaymentDetailsResponse(details), nil
}
