package service

import (
	"context"

	"impes-be/internal/dto"
	"impes-be/internal/entity"
	"impes-be/internal/pkg/apperr"
	"impes-be/internal/pkg/logger"
	"impes-be/internal/repository/specification"
	"impes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPaymentRequestService interface {
	Submit(ctx context.Context, principal *entity.Principal, req *dto.SubmitPaymentRequest) (*dto.SubmitPaymentResponse, error)
	GetDetailed(ctx context.Context, principal *entity.Principal, requestId uuid.UUID) (*dto.PaymentRequestDetailResponse, error)
	ListForProject(ctx context.Context, principal *entity.Principal, projectId uuid.UUID) ([]*dto.PaymentRequestSummaryResponse, error)
	ListAll(ctx context.Context, principal *entity.Principal, query *dto.ListPaymentRequestsQuery) ([]*dto.PaymentRequestSummaryResponse, int64, error)
	Void(ctx context.Context, principal *entity.Principal, requestId uuid.UUID) error

	AssignContractor(ctx context.Context, projectId, contractorId uuid.UUID) (*dto.ProjectAssignmentResponse, error)
	UnassignContractor(ctx context.Context, projectId, contractorId uuid.UUID) error
	ListContractors(ctx context.Context, projectId uuid.UUID) ([]*dto.ProjectAssignmentResponse, error)
}

type paymentRequestService struct {
	uowFactory    unitofwork.RepositoryFactory
	registry      IWorkflowRegistry
	publisher     IPaymentEventPublisher
	readPrivilege entity.Privilege
	logger        logger.ILogger
}

func NewPaymentRequestService(
	uowFactory unitofwork.RepositoryFactory,
	registry IWorkflowRegistry,
	publisher IPaymentEventPublisher,
	readPrivilege entity.Privilege,
	log logger.ILogger,
) IPaymentRequestService {
	if readPrivilege == "" {
		readPrivilege = entity.PrivilegePaymentRequestReadAll
	}
	return &paymentRequestService{
		uowFactory:    uowFactory,
		registry:      registry,
		publisher:     publisher,
		readPrivilege: readPrivilege,
		logger:        log,
	}
}

// canRead grants project reads to holders of the global read privilege and
// to the contractor currently assigned to the project.
func canRead(ctx context.Context, uow unitofwork.UnitOfWork, principal *entity.Principal, readPrivilege entity.Privilege, projectId uuid.UUID) error {
	if principal == nil {
		return apperr.Forbidden("insufficient privileges")
	}
	if principal.Privileges.Has(readPrivilege) {
		return nil
	}
	if principal.ContractorId != nil {
		assigned, err := uow.ProjectAssignmentRepository().IsAssigned(ctx, projectId, *principal.ContractorId)
		if err != nil {
			return apperr.FromStorage(err, "failed to check project assignment")
		}
		if assigned {
			return nil
		}
	}
	return apperr.Forbidden("not authorized to view payment requests of this project")
}

func (s *paymentRequestService) Submit(ctx context.Context, principal *entity.Principal, req *dto.SubmitPaymentRequest) (*dto.SubmitPaymentResponse, error) {
	if len(req.Activities) == 0 {
		return nil, apperr.Validation("activities must contain at least one activity")
	}

	// Configuration problems are reported as such, before anything is written.
	table, err := s.registry.Table(ctx)
	if err != nil {
		return nil, err
	}
	statusId, levelId, err := table.Initial()
	if err != nil {
		return nil, err
	}

	request := &entity.PaymentRequest{
		ProjectId:              req.ProjectId,
		ContractorId:           req.ContractorId,
		Amount:                 req.Amount,
		Description:            req.Description,
		UserId:                 principal.UserId,
		PaymentStatusId:        statusId,
		CurrentApprovalLevelId: &levelId,
	}

	if err := s.persistSubmission(ctx, principal, request, req); err != nil {
		s.logger.Error("PAYMENT_REQUEST", "Submission rolled back", map[string]interface{}{
			"project_id": req.ProjectId,
			"user_id":    principal.UserId,
			"error":      err,
		})
		return nil, apperr.Submission(err)
	}

	statusName := table.StatusName(statusId)
	s.logger.Info("PAYMENT_REQUEST", "Payment request submitted", map[string]interface{}{
		"request_id": request.Id,
		"project_id": request.ProjectId,
		"amount":     request.Amount,
	})
	s.publisher.PublishSubmitted(ctx, request, statusName)

	return &dto.SubmitPaymentResponse{
		RequestId:              request.Id,
		PaymentStatusId:        request.PaymentStatusId,
		StatusName:             statusName,
		CurrentApprovalLevelId: request.CurrentApprovalLevelId,
	}, nil
}

func (s *paymentRequestService) persistSubmission(ctx context.Context, principal *entity.Principal, request *entity.PaymentRequest, req *dto.SubmitPaymentRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	repo := uow.PaymentRequestRepository()
	if err := repo.Create(ctx, request); err != nil {
		return err
	}

	milestones := make([]*entity.PaymentRequestMilestone, 0, len(req.Activities))
	for _, activityId := range req.Activities {
		milestones = append(milestones, &entity.PaymentRequestMilestone{
			RequestId:  request.Id,
			ActivityId: activityId,
			Status:     entity.MilestoneStatusAccomplished,
			UserId:     principal.UserId,
		})
	}
	if err := repo.CreateMilestones(ctx, milestones); err != nil {
		return err
	}

	documents := make([]*entity.PaymentRequestDocument, 0, len(req.Documents))
	for _, d := range req.Documents {
		documents = append(documents, &entity.PaymentRequestDocument{
			RequestId:    request.Id,
			DocumentType: d.DocumentType,
			DocumentPath: d.DocumentPath,
			Description:  d.Description,
			UserId:       principal.UserId,
		})
	}
	if err := repo.CreateDocuments(ctx, documents); err != nil {
		return err
	}

	team := make([]*entity.InspectionMember, 0, len(req.InspectionTeam))
	for _, m := range req.InspectionTeam {
		team = append(team, &entity.InspectionMember{
			RequestId: request.Id,
			StaffId:   m.StaffId,
			Name:      m.Name,
			Role:      m.Role,
		})
	}
	if err := repo.CreateInspectionTeam(ctx, team); err != nil {
		return err
	}

	statusId := request.PaymentStatusId
	err := uow.ApprovalHistoryRepository().Append(ctx, &entity.ApprovalHistory{
		RequestId:      request.Id,
		Action:         entity.HistoryActionSubmitted,
		ActionByUserId: principal.UserId,
		Notes:          req.Description,
		Transition: entity.HistoryTransition{
			ToStatusId: &statusId,
			ToLevelId:  request.CurrentApprovalLevelId,
		},
	})
	if err != nil {
		return err
	}

	return uow.Commit()
}

func (s *paymentRequestService) GetDetailed(ctx context.Context, principal *entity.Principal, requestId uuid.UUID) (*dto.PaymentRequestDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PaymentRequestRepository()

	summary, err := repo.FindSummary(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to load payment request")
	}
	if summary == nil {
		return nil, apperr.NotFound("payment request", requestId)
	}
	if err := canRead(ctx, uow, principal, s.readPrivilege, summary.ProjectId); err != nil {
		return nil, err
	}

	detail := &entity.PaymentRequestDetail{PaymentRequestSummary: *summary}

	if detail.Milestones, err = repo.FindMilestones(ctx, requestId); err != nil {
		return nil, apperr.FromStorage(err, "failed to load milestones")
	}
	if detail.Documents, err = repo.FindDocuments(ctx, requestId); err != nil {
		return nil, apperr.FromStorage(err, "failed to load documents")
	}
	if detail.InspectionTeam, err = repo.FindInspectionTeam(ctx, requestId); err != nil {
		return nil, apperr.FromStorage(err, "failed to load inspection team")
	}
	if detail.ItemApprovals, err = repo.FindItemApprovals(ctx, requestId); err != nil {
		return nil, apperr.FromStorage(err, "failed to load item approvals")
	}
	if detail.PaymentDetails, err = uow.PaymentDetailsRepository().FindOne(ctx, specification.ByRequestID{RequestID: requestId}); err != nil {
		return nil, apperr.FromStorage(err, "failed to load payment details")
	}

	if summary.CurrentApprovalLevelId != nil {
		if detail.CurrentLevel, err = uow.ApprovalLevelRepository().FindOne(ctx, specification.ByID{ID: *summary.CurrentApprovalLevelId}); err != nil {
			return nil, apperr.FromStorage(err, "failed to load approval level")
		}
	}

	submitter, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: summary.UserId})
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to load submitter")
	}
	if submitter != nil {
		detail.SubmitterName = submitter.DisplayName()
		role, err := uow.RoleRepository().FindOne(ctx, specification.ByID{ID: submitter.RoleId})
		if err != nil {
			return nil, apperr.FromStorage(err, "failed to load submitter role")
		}
		if role != nil {
			detail.SubmitterRoleName = role.Name
		}
	}

	return toPaymentRequestDetailResponse(detail), nil
}

func (s *paymentRequestService) ListForProject(ctx context.Context, principal *entity.Principal, projectId uuid.UUID) ([]*dto.PaymentRequestSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := canRead(ctx, uow, principal, s.readPrivilege, projectId); err != nil {
		return nil, err
	}

	summaries, err := uow.PaymentRequestRepository().FindSummaries(ctx,
		specification.ByProjectID{ProjectID: projectId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to list payment requests")
	}
	return toPaymentRequestSummaryResponses(summaries), nil
}

func (s *paymentRequestService) ListAll(ctx context.Context, principal *entity.Principal, query *dto.ListPaymentRequestsQuery) ([]*dto.PaymentRequestSummaryResponse, int64, error) {
	if principal == nil || !principal.Privileges.Has(s.readPrivilege) {
		return nil, 0, apperr.Forbidden("insufficient privileges")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PaymentRequestRepository()

	filters := make([]specification.Specification, 0, 1)
	if query.StatusId != nil {
		filters = append(filters, specification.ByPaymentStatusID{StatusID: *query.StatusId})
	}

	total, err := repo.Count(ctx, filters...)
	if err != nil {
		return nil, 0, apperr.FromStorage(err, "failed to count payment requests")
	}

	specs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Page(query.Page, query.Limit),
	)
	summaries, err := repo.FindSummaries(ctx, specs...)
	if err != nil {
		return nil, 0, apperr.FromStorage(err, "failed to list payment requests")
	}
	return toPaymentRequestSummaryResponses(summaries), total, nil
}

// Void hides a request from every read. Paid requests stay on record.
func (s *paymentRequestService) Void(ctx context.Context, principal *entity.Principal, requestId uuid.UUID) error {
	table, err := s.registry.Table(ctx)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperr.FromStorage(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	current, err := uow.PaymentRequestRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return apperr.FromStorage(err, "failed to load payment request")
	}
	if current == nil {
		return apperr.NotFound("payment request", requestId)
	}
	if table.Is(current.PaymentStatusId, entity.StatusCodePaid) {
		return apperr.InvalidTransition("paid payment requests cannot be voided")
	}

	statusId, levelId := current.PaymentStatusId, current.CurrentApprovalLevelId
	ok, err := uow.PaymentRequestRepository().Void(ctx, current)
	if err != nil {
		return apperr.FromStorage(err, "failed to void payment request")
	}
	if !ok {
		return apperr.OptimisticConflict("payment request", requestId)
	}

	err = uow.ApprovalHistoryRepository().Append(ctx, &entity.ApprovalHistory{
		RequestId:      requestId,
		Action:         entity.HistoryActionVoided,
		ActionByUserId: principal.UserId,
		Transition: entity.HistoryTransition{
			FromStatusId: &statusId,
			ToStatusId:   &statusId,
			FromLevelId:  levelId,
			ToLevelId:    levelId,
		},
	})
	if err != nil {
		return apperr.FromStorage(err, "failed to record void")
	}

	if err := uow.Commit(); err != nil {
		return apperr.FromStorage(err, "failed to commit void")
	}

	s.logger.Info("PAYMENT_REQUEST", "Payment request voided", map[string]interface{}{
		"request_id": requestId,
		"user_id":    principal.UserId,
	})
	return nil
}

func toProjectAssignmentResponse(a *entity.ProjectAssignment) *dto.ProjectAssignmentResponse {
	return &dto.ProjectAssignmentResponse{
		Id:           a.Id,
		ProjectId:    a.ProjectId,
		ContractorId: a.ContractorId,
		CreatedAt:    a.CreatedAt,
	}
}

func (s *paymentRequestService) AssignContractor(ctx context.Context, projectId, contractorId uuid.UUID) (*dto.ProjectAssignmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	assignment, err := uow.ProjectAssignmentRepository().Assign(ctx, projectId, contractorId)
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to assign contractor")
	}

	s.logger.Info("PAYMENT_REQUEST", "Contractor assigned to project", map[string]interface{}{
		"project_id":    projectId,
		"contractor_id": contractorId,
	})
	return toProjectAssignmentResponse(assignment), nil
}

func (s *paymentRequestService) UnassignContractor(ctx context.Context, projectId, contractorId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	removed, err := uow.ProjectAssignmentRepository().Unassign(ctx, projectId, contractorId)
	if err != nil {
		return apperr.FromStorage(err, "failed to unassign contractor")
	}
	if !removed {
		return apperr.NotFound("project assignment", contractorId)
	}

	s.logger.Info("PAYMENT_REQUEST", "Contractor unassigned from project", map[string]interface{}{
		"project_id":    projectId,
		"contractor_id": contractorId,
	})
	return nil
}

func (s *paymentRequestService) ListContractors(ctx context.Context, projectId uuid.UUID) ([]*dto.ProjectAssignmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	assignments, err := uow.ProjectAssignmentRepository().FindByProject(ctx, projectId)
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to list project contractors")
	}

	result := make([]*dto.ProjectAssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		result = append(result, toProjectAssignmentResponse(a))
	}
	return result, nil
}
