package mapper

import (
	"impes-be/internal/entity"
	"impes-be/internal/model"
)

type ApprovalLevelMapper struct{}

func NewApprovalLevelMapper() *ApprovalLevelMapper {
	return &ApprovalLevelMapper{}
}

func (m *ApprovalLevelMapper) ToEntity(l *model.ApprovalLevel) *entity.ApprovalLevel {
	if l == nil {
		return nil
	}
	return &entity.ApprovalLevel{
		Id:            l.Id,
		LevelName:     l.LevelName,
		RoleId:        l.RoleId,
		ApprovalOrder: l.ApprovalOrder,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     optionalTime(l.UpdatedAt),
	}
}

func (m *ApprovalLevelMapper) RowToEntity(r *model.ApprovalLevelWithRole) *entity.ApprovalLevel {
	if r == nil {
		return nil
	}
	e := m.ToEntity(&r.ApprovalLevel)
	e.RoleName = r.RoleName
	return e
}

func (m *ApprovalLevelMapper) ToModel(l *entity.ApprovalLevel) *model.ApprovalLevel {
	if l == nil {
		return nil
	}
	return &model.ApprovalLevel{
		Id:            l.Id,
		LevelName:     l.LevelName,
		RoleId:        l.RoleId,
		ApprovalOrder: l.ApprovalOrder,
		CreatedAt:     l.CreatedAt,
	}
}

func (m *ApprovalLevelMapper) RowsToEntities(rows []*model.ApprovalLevelWithRole) []*entity.ApprovalLevel {
	out := make([]*entity.ApprovalLevel, 0, len(rows))
	for _, r := range rows {
		out = append(out, m.RowToEntity(r))
	}
	return out
}
