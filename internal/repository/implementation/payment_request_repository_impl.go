package implementation

import (
	"context"
	"errors"
	"time"

	"impes-be/internal/entity"
	"impes-be/internal/mapper"
	"impes-be/internal/model"
	"impes-be/internal/repository/contract"
	"impes-be/internal/repository/scope"
	"impes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const summaryColumns = `payment_requests.*,
	COALESCE((SELECT s.status_name FROM payment_statuses s WHERE s.id = payment_requests.payment_status_id), '') AS status_name,
	COALESCE((SELECT s.code FROM payment_statuses s WHERE s.id = payment_requests.payment_status_id), '') AS status_code,
	(SELECT l.level_name FROM approval_levels l WHERE l.id = payment_requests.current_approval_level_id) AS current_level_name`

type PaymentRequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentRequestMapper
}

func NewPaymentRequestRepository(db *gorm.DB) contract.PaymentRequestRepository {
	return &PaymentRequestRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentRequestMapper(),
	}
}

func (r *PaymentRequestRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PaymentRequestRepositoryImpl) Create(ctx context.Context, request *entity.PaymentRequest) error {
	m := r.mapper.ToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentRequestRepositoryImpl) CreateMilestones(ctx context.Context, milestones []*entity.PaymentRequestMilestone) error {
	if len(milestones) == 0 {
		return nil
	}
	models := r.mapper.MilestonesToModels(milestones)
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		milestones[i].Id = m.Id
		milestones[i].CreatedAt = m.CreatedAt
	}
	return nil
}

func (r *PaymentRequestRepositoryImpl) CreateDocuments(ctx context.Context, documents []*entity.PaymentRequestDocument) error {
	if len(documents) == 0 {
		return nil
	}
	models := r.mapper.DocumentsToModels(documents)
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		documents[i].Id = m.Id
		documents[i].CreatedAt = m.CreatedAt
	}
	return nil
}

func (r *PaymentRequestRepositoryImpl) CreateInspectionTeam(ctx context.Context, members []*entity.InspectionMember) error {
	if len(members) == 0 {
		return nil
	}
	models := r.mapper.InspectionTeamToModels(members)
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		members[i].Id = m.Id
	}
	return nil
}

func (r *PaymentRequestRepositoryImpl) CreateItemApproval(ctx context.Context, approval *entity.ItemApproval) error {
	m := r.mapper.ItemApprovalToModel(approval)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	approval.Id = m.Id
	approval.CreatedAt = m.CreatedAt
	return nil
}

func (r *PaymentRequestRepositoryImpl) guarded(ctx context.Context, current *entity.PaymentRequest) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.PaymentRequest{}).
		Where("id = ? AND version = ? AND payment_status_id = ? AND voided = ?",
			current.Id, current.Version, current.PaymentStatusId, false)
	if current.CurrentApprovalLevelId == nil {
		return query.Where("current_approval_level_id IS NULL")
	}
	return query.Where("current_approval_level_id = ?", *current.CurrentApprovalLevelId)
}

func (r *PaymentRequestRepositoryImpl) CompareAndSwapState(ctx context.Context, current *entity.PaymentRequest, statusId uuid.UUID, levelId *uuid.UUID) (bool, error) {
	var nextLevel interface{}
	if levelId != nil {
		nextLevel = *levelId
	}

	now := time.Now()
	res := r.guarded(ctx, current).Updates(map[string]interface{}{
		"payment_status_id":         statusId,
		"current_approval_level_id": nextLevel,
		"version":                   gorm.Expr("version + 1"),
		"updated_at":                now,
	})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected != 1 {
		return false, nil
	}

	current.PaymentStatusId = statusId
	current.CurrentApprovalLevelId = levelId
	current.Version++
	current.UpdatedAt = now
	return true, nil
}

func (r *PaymentRequestRepositoryImpl) Void(ctx context.Context, current *entity.PaymentRequest) (bool, error) {
	res := r.guarded(ctx, current).Updates(map[string]interface{}{
		"voided":     true,
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected != 1 {
		return false, nil
	}
	current.Voided = true
	current.Version++
	return true, nil
}

func (r *PaymentRequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentRequest, error) {
	var m model.PaymentRequest
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.ExcludeVoided), specs...)
	if err := query.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentRequestRepositoryImpl) summaryQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.PaymentRequest{}).
		Select(summaryColumns).
		Scopes(scope.ExcludeVoided)
}

func (r *PaymentRequestRepositoryImpl) FindSummary(ctx context.Context, specs ...specification.Specification) (*entity.PaymentRequestSummary, error) {
	var row model.PaymentRequestRow
	query := r.applySpecifications(r.summaryQuery(ctx), specs...)
	if err := query.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RowToSummary(&row), nil
}

func (r *PaymentRequestRepositoryImpl) FindSummaries(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentRequestSummary, error) {
	var rows []*model.PaymentRequestRow
	query := r.applySpecifications(r.summaryQuery(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.RowsToSummaries(rows), nil
}

func (r *PaymentRequestRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PaymentRequest{}).Scopes(scope.ExcludeVoided), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PaymentRequestRepositoryImpl) FindMilestones(ctx context.Context, requestId uuid.UUID) ([]*entity.PaymentRequestMilestone, error) {
	var models []*model.PaymentRequestMilestone
	query := specification.ByRequestID{RequestID: requestId}.Apply(r.db.WithContext(ctx))
	if err := query.Scopes(scope.OrderByCreatedAsc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MilestonesToEntities(models), nil
}

func (r *PaymentRequestRepositoryImpl) FindDocuments(ctx context.Context, requestId uuid.UUID) ([]*entity.PaymentRequestDocument, error) {
	var models []*model.PaymentRequestDocument
	query := specification.ByRequestID{RequestID: requestId}.Apply(r.db.WithContext(ctx))
	if err := query.Scopes(scope.OrderByCreatedAsc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.DocumentsToEntities(models), nil
}

func (r *PaymentRequestRepositoryImpl) FindInspectionTeam(ctx context.Context, requestId uuid.UUID) ([]*entity.InspectionMember, error) {
	var models []*model.PaymentRequestInspectionMember
	query := specification.ByRequestID{RequestID: requestId}.Apply(r.db.WithContext(ctx))
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.InspectionTeamToEntities(models), nil
}

func (r *PaymentRequestRepositoryImpl) FindItemApprovals(ctx context.Context, requestId uuid.UUID) ([]*entity.ItemApproval, error) {
	var models []*model.PaymentRequestItemApproval
	query := specification.ByRequestID{RequestID: requestId}.Apply(r.db.WithContext(ctx))
	if err := query.Scopes(scope.OrderByCreatedAsc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ItemApprovalsToEntities(models), nil
}
