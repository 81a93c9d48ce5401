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
	"impes-be/pkg/workflow"

	"github.com/google/uuid"
)

type IApprovalLevelService interface {
	GetAll(ctx context.Context) ([]*dto.ApprovalLevelResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ApprovalLevelResponse, error)
	Create(ctx context.Context, req *dto.CreateApprovalLevelRequest) (*dto.ApprovalLevelResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateApprovalLevelRequest) (*dto.ApprovalLevelResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Workflow(ctx context.Context) (*dto.WorkflowResponse, error)
}

type approvalLevelService struct {
	uowFactory unitofwork.RepositoryFactory
	registry   IWorkflowRegistry
	logger     logger.ILogger
}

func NewApprovalLevelService(
	uowFactory unitofwork.RepositoryFactory,
	registry IWorkflowRegistry,
	log logger.ILogger,
) IApprovalLevelService {
	return &approvalLevelService{
		uowFactory: uowFactory,
		registry:   registry,
		logger:     log,
	}
}

func toApprovalLevelResponse(level *entity.ApprovalLevel) *dto.ApprovalLevelResponse {
	if level == nil {
		return nil
	}
	return &dto.ApprovalLevelResponse{
		LevelId:       level.Id,
		LevelName:     level.LevelName,
		RoleId:        level.RoleId,
		RoleName:      level.RoleName,
		ApprovalOrder: level.ApprovalOrder,
		CreatedAt:     level.CreatedAt,
		UpdatedAt:     level.UpdatedAt,
	}
}

func (s *approvalLevelService) GetAll(ctx context.Context) ([]*dto.ApprovalLevelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	levels, err := uow.ApprovalLevelRepository().FindAll(ctx)
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to list approval levels")
	}

	result := make([]*dto.ApprovalLevelResponse, 0, len(levels))
	for _, level := range levels {
		result = append(result, toApprovalLevelResponse(level))
	}
	return result, nil
}

func (s *approvalLevelService) Show(ctx context.Context, id uuid.UUID) (*dto.ApprovalLevelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	level, err := uow.ApprovalLevelRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to load approval level")
	}
	if level == nil {
		return nil, apperr.NotFound("approval level", id)
	}
	return toApprovalLevelResponse(level), nil
}

func (s *approvalLevelService) ensureRole(ctx context.Context, uow unitofwork.UnitOfWork, roleId uuid.UUID) error {
	role, err := uow.RoleRepository().FindOne(ctx, specification.ByID{ID: roleId})
	if err != nil {
		return apperr.FromStorage(err, "failed to load role")
	}
	if role == nil {
		return apperr.NotFound("role", roleId)
	}
	return nil
}

func (s *approvalLevelService) Create(ctx context.Context, req *dto.CreateApprovalLevelRequest) (*dto.ApprovalLevelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.ensureRole(ctx, uow, req.RoleId); err != nil {
		return nil, err
	}

	level := &entity.ApprovalLevel{
		LevelName:     req.LevelName,
		RoleId:        req.RoleId,
		ApprovalOrder: req.ApprovalOrder,
	}
	if err := uow.ApprovalLevelRepository().Create(ctx, level); err != nil {
		return nil, apperr.FromStorage(err, "failed to create approval level")
	}

	s.registry.Invalidate(ctx)
	s.logger.Info("REGISTRY", "Approval level created", map[string]interface{}{
		"level_id": level.Id,
		"order":    level.ApprovalOrder,
	})

	return s.Show(ctx, level.Id)
}

func (s *approvalLevelService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateApprovalLevelRequest) (*dto.ApprovalLevelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.ensureRole(ctx, uow, req.RoleId); err != nil {
		return nil, err
	}

	now := time.Now()
	level := &entity.ApprovalLevel{
		Id:            id,
		LevelName:     req.LevelName,
		RoleId:        req.RoleId,
		ApprovalOrder: req.ApprovalOrder,
		UpdatedAt:     &now,
	}
	if err := uow.ApprovalLevelRepository().Update(ctx, level); err != nil {
		return nil, apperr.FromStorage(err, "failed to update approval level")
	}

	s.registry.Invalidate(ctx)
	s.logger.Info("REGISTRY", "Approval level updated", map[string]interface{}{"level_id": id})

	return s.Show(ctx, id)
}

// Delete refuses while requests sit at the level or statuses are bound to it.
func (s *approvalLevelService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperr.FromStorage(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	inFlight, err := uow.PaymentRequestRepository().Count(ctx, specification.AtApprovalLevel{LevelID: id})
	if err != nil {
		return apperr.FromStorage(err, "failed to check approval level usage")
	}
	if inFlight > 0 {
		return apperr.Conflict("approval level is in use by %d payment request(s)", inFlight)
	}

	bound, err := uow.PaymentStatusRepository().Count(ctx, specification.BoundToLevel{LevelID: id})
	if err != nil {
		return apperr.FromStorage(err, "failed to check approval level usage")
	}
	if bound > 0 {
		return apperr.Conflict("approval level is bound to %d payment status(es)", bound)
	}

	if err := uow.ApprovalLevelRepository().Delete(ctx, id); err != nil {
		return apperr.FromStorage(err, "failed to delete approval level")
	}
	if err := uow.Commit(); err != nil {
		return apperr.FromStorage(err, "failed to commit approval level delete")
	}

	s.registry.Invalidate(ctx)
	s.logger.Info("REGISTRY", "Approval level deleted", map[string]interface{}{"level_id": id})
	return nil
}

func (s *approvalLevelService) Workflow(ctx context.Context) (*dto.WorkflowResponse, error) {
	table, err := s.registry.Recompile(ctx)
	if err != nil {
		return nil, err
	}

	levels := table.Levels()
	res := &dto.WorkflowResponse{
		Healthy:     len(table.Issues()) == 0,
		Levels:      make([]dto.ApprovalLevelResponse, 0, len(levels)),
		Transitions: table.Transitions(),
		Issues:      table.Issues(),
	}
	for _, level := range levels {
		res.Levels = append(res.Levels, *toApprovalLevelResponse(level))
	}
	if res.Issues == nil {
		res.Issues = []workflow.Issue{}
	}
	return res, nil
}
