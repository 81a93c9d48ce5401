package mapper

import (
	"impes-be/internal/entity"
	"impes-be/internal/model"
)

type PaymentStatusMapper struct{}

func NewPaymentStatusMapper() *PaymentStatusMapper {
	return &PaymentStatusMapper{}
}

func (m *PaymentStatusMapper) ToEntity(s *model.PaymentStatus) *entity.PaymentStatus {
	if s == nil {
		return nil
	}
	return &entity.PaymentStatus{
		Id:              s.Id,
		StatusName:      s.StatusName,
		Description:     s.Description,
		Code:            entity.StatusCode(s.Code),
		ApprovalLevelId: s.ApprovalLevelId,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       optionalTime(s.UpdatedAt),
	}
}

func (m *PaymentStatusMapper) ToModel(s *entity.PaymentStatus) *model.PaymentStatus {
	if s == nil {
		return nil
	}
	return &model.PaymentStatus{
		Id:              s.Id,
		StatusName:      s.StatusName,
		Description:     s.Description,
		Code:            string(s.Code),
		ApprovalLevelId: s.ApprovalLevelId,
		CreatedAt:       s.CreatedAt,
	}
}

func (m *PaymentStatusMapper) ToEntities(models []*model.PaymentStatus) []*entity.PaymentStatus {
	out := make([]*entity.PaymentStatus, 0, len(models))
	for _, s := range models {
		out = append(out, m.ToEntity(s))
	}
	return out
}
