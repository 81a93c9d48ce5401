package implementation

import (
	"context"
	"time"

	"impes-be/internal/entity"
	"impes-be/internal/mapper"
	"impes-be/internal/model"
	"impes-be/internal/repository/contract"
	"impes-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApprovalHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ApprovalHistoryMapper
}

func NewApprovalHistoryRepository(db *gorm.DB) contract.ApprovalHistoryRepository {
	return &ApprovalHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewApprovalHistoryMapper(),
	}
}

// Append assigns the next per-request sequence. Callers hold the request's
// compare-and-swap inside the same transaction, so sequences cannot collide
// except on a lost race, which the unique index rejects.
func (r *ApprovalHistoryRepositoryImpl) Append(ctx context.Context, entry *entity.ApprovalHistory) error {
	var last int
	err := r.db.WithContext(ctx).
		Model(&model.PaymentApprovalHistory{}).
		Where("request_id = ?", entry.RequestId).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&last).Error
	if err != nil {
		return err
	}

	entry.Sequence = last + 1
	if entry.ActionDate.IsZero() {
		entry.ActionDate = time.Now().UTC()
	}

	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	entry.Id = m.Id
	return nil
}

func (r *ApprovalHistoryRepositoryImpl) FindByRequestId(ctx context.Context, requestId uuid.UUID) ([]*entity.ApprovalHistory, error) {
	var rows []*model.PaymentApprovalHistoryRow
	err := r.db.WithContext(ctx).
		Table("payment_approval_history AS h").
		Select(`h.*,
			ab.first_name AS action_by_first_name, ab.last_name AS action_by_last_name, ab.username AS action_by_username,
			au.first_name AS assigned_to_first_name, au.last_name AS assigned_to_last_name, au.username AS assigned_to_username`).
		Joins("LEFT JOIN users ab ON ab.id = h.action_by_user_id").
		Joins("LEFT JOIN users au ON au.id = h.assigned_to_user_id").
		Where("h.request_id = ?", requestId).
		Scopes(scope.OrderByActionDate).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.RowsToEntities(rows), nil
}

func (r *ApprovalHistoryRepositoryImpl) CountByRequestId(ctx context.Context, requestId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PaymentApprovalHistory{}).
		Where("request_id = ?", requestId).
		Count(&count).Error
	return count, err
}
