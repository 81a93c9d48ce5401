package service

import (
	"context"

	"impes-be/internal/dto"
	"impes-be/internal/entity"
	"impes-be/internal/pkg/apperr"
	"impes-be/internal/pkg/logger"
	"impes-be/internal/repository/specification"
	"impes-be/internal/repository/unitofwork"
	"impes-be/pkg/workflow"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("impes-be/service")

type IApprovalService interface {
	Apply(ctx context.Context, principal *entity.Principal, requestId uuid.UUID, req *dto.PaymentActionRequest) (*dto.PaymentActionResponse, error)
	RecordItemApproval(ctx context.Context, principal *entity.Principal, requestId, milestoneId uuid.UUID, req *dto.ItemApprovalRequest) (*dto.ItemApprovalResponse, error)
}

type approvalService struct {
	uowFactory unitofwork.RepositoryFactory
	registry   IWorkflowRegistry
	publisher  IPaymentEventPublisher
	logger     logger.ILogger
}

func NewApprovalService(
	uowFactory unitofwork.RepositoryFactory,
	registry IWorkflowRegistry,
	publisher IPaymentEventPublisher,
	log logger.ILogger,
) IApprovalService {
	return &approvalService{
		uowFactory: uowFactory,
		registry:   registry,
		publisher:  publisher,
		logger:     log,
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperr.KindOf(err)))
	}
	span.End()
}

// Apply moves a request one step through the approval chain. The state
// change and its history entry commit together, and only if the request is
// still in the state it was read in.
func (s *approvalService) Apply(ctx context.Context, principal *entity.Principal, requestId uuid.UUID, req *dto.PaymentActionRequest) (res *dto.PaymentActionResponse, err error) {
	ctx, span := tracer.Start(ctx, "ApprovalService.Apply", trace.WithAttributes(
		attribute.String("payment_request.id", requestId.String()),
		attribute.String("payment_request.action", req.Action),
	))
	defer func() { endSpan(span, err) }()

	action, ok := workflow.ParseAction(req.Action)
	if !ok {
		return nil, apperr.Validation("action must be one of [Approve, Reject, Returned for Correction, Resubmit]")
	}

	// Loaded before Begin so the transaction holds no connection while the
	// registry is read.
	table, err := s.registry.Table(ctx)
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
	if current.CurrentApprovalLevelId == nil {
		return nil, apperr.InvalidTransition("payment request is not awaiting approval")
	}

	if err := s.authorize(ctx, uow, table, principal, current, action); err != nil {
		return nil, err
	}

	if req.AssignedToUserId != nil {
		assignee, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *req.AssignedToUserId})
		if err != nil {
			return nil, apperr.FromStorage(err, "failed to load assigned user")
		}
		if assignee == nil {
			return nil, apperr.Validation("assigned user %s does not exist", *req.AssignedToUserId)
		}
	}

	tr, err := table.Next(current.PaymentStatusId, current.CurrentApprovalLevelId, action)
	if err != nil {
		if apperr.Is(err, apperr.KindConfiguration) {
			s.logger.Error("APPROVAL", "Approval workflow is misconfigured", map[string]interface{}{
				"request_id": requestId,
				"action":     string(action),
				"error":      err,
			})
		}
		return nil, err
	}

	fromStatus, fromLevel := current.PaymentStatusId, current.CurrentApprovalLevelId
	swapped, err := uow.PaymentRequestRepository().CompareAndSwapState(ctx, current, *tr.NextStatusId, tr.NextLevelId)
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to update payment request")
	}
	if !swapped {
		return nil, apperr.OptimisticConflict("payment request", requestId)
	}

	err = uow.ApprovalHistoryRepository().Append(ctx, &entity.ApprovalHistory{
		RequestId:        requestId,
		Action:           string(action),
		ActionByUserId:   principal.UserId,
		AssignedToUserId: req.AssignedToUserId,
		Notes:            req.Notes,
		Transition: entity.HistoryTransition{
			FromStatusId: &fromStatus,
			ToStatusId:   tr.NextStatusId,
			FromLevelId:  fromLevel,
			ToLevelId:    tr.NextLevelId,
		},
	})
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to record approval history")
	}

	if err := uow.Commit(); err != nil {
		return nil, apperr.FromStorage(err, "failed to commit approval action")
	}

	span.SetAttributes(attribute.String("payment_request.status", tr.NextStatusName))
	s.logger.Info("APPROVAL", "Payment request actioned", map[string]interface{}{
		"request_id": requestId,
		"action":     string(action),
		"status":     tr.NextStatusName,
		"user_id":    principal.UserId,
		"version":    current.Version,
	})
	s.publisher.PublishActioned(ctx, current, string(action), principal.UserId, req.AssignedToUserId, tr.NextStatusName)

	return &dto.PaymentActionResponse{
		RequestId:              requestId,
		Action:                 string(action),
		Status:                 tr.NextStatusName,
		PaymentStatusId:        current.PaymentStatusId,
		CurrentApprovalLevelId: current.CurrentApprovalLevelId,
		Version:                current.Version,
	}, nil
}

// authorize applies the per-action gate on top of the route privilege.
// Approve needs the role bound to the current level; Resubmit is reserved
// for the submitter and the project's assigned contractor.
func (s *approvalService) authorize(ctx context.Context, uow unitofwork.UnitOfWork, table *workflow.Table, principal *entity.Principal, current *entity.PaymentRequest, action workflow.Action) error {
	switch action {
	case workflow.ActionApprove:
		level, ok := table.Level(*current.CurrentApprovalLevelId)
		if !ok {
			return apperr.Configuration("approval level %s is no longer configured", *current.CurrentApprovalLevelId)
		}
		if principal.RoleId != level.RoleId {
			s.logger.Warn("APPROVAL", "Approve rejected by role gate", map[string]interface{}{
				"request_id":    current.Id,
				"user_id":       principal.UserId,
				"required_role": level.RoleId,
			})
			return apperr.Forbidden("not authorized to approve at this stage")
		}
	case workflow.ActionResubmit:
		if principal.UserId == current.UserId {
			return nil
		}
		if principal.ContractorId != nil {
			assigned, err := uow.ProjectAssignmentRepository().IsAssigned(ctx, current.ProjectId, *principal.ContractorId)
			if err != nil {
				return apperr.FromStorage(err, "failed to check project assignment")
			}
			if assigned {
				return nil
			}
		}
		return apperr.Forbidden("only the submitter or the assigned contractor can resubmit")
	}
	return nil
}

func (s *approvalService) RecordItemApproval(ctx context.Context, principal *entity.Principal, requestId, milestoneId uuid.UUID, req *dto.ItemApprovalRequest) (*dto.ItemApprovalResponse, error) {
	table, err := s.registry.Table(ctx)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PaymentRequestRepository()

	current, err := repo.FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to load payment request")
	}
	if current == nil {
		return nil, apperr.NotFound("payment request", requestId)
	}
	if current.CurrentApprovalLevelId == nil {
		return nil, apperr.InvalidTransition("payment request is not awaiting approval")
	}

	level, ok := table.Level(*current.CurrentApprovalLevelId)
	if !ok {
		return nil, apperr.Configuration("approval level %s is no longer configured", *current.CurrentApprovalLevelId)
	}
	if principal.RoleId != level.RoleId {
		return nil, apperr.Forbidden("not authorized to review items at this stage")
	}

	milestones, err := repo.FindMilestones(ctx, requestId)
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to load milestones")
	}
	found := false
	for _, m := range milestones {
		if m.Id == milestoneId {
			found = true
			break
		}
	}
	if !found {
		return nil, apperr.NotFound("milestone", milestoneId)
	}

	approval := &entity.ItemApproval{
		RequestId:        requestId,
		MilestoneId:      milestoneId,
		ApprovalLevelId:  level.Id,
		Decision:         entity.ItemDecision(req.Decision),
		Notes:            req.Notes,
		ApprovedByUserId: principal.UserId,
	}
	if err := repo.CreateItemApproval(ctx, approval); err != nil {
		return nil, apperr.FromStorage(err, "failed to record item approval")
	}

	s.logger.Info("APPROVAL", "Item decision recorded", map[string]interface{}{
		"request_id":   requestId,
		"milestone_id": milestoneId,
		"decision":     req.Decision,
	})

	res := toItemApprovalResponse(approval)
	return &res, nil
}
