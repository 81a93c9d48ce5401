package mapper

import (
	"strings"

	"impes-be/internal/entity"
	"impes-be/internal/model"

	"gorm.io/datatypes"
)

type ApprovalHistoryMapper struct{}

func NewApprovalHistoryMapper() *ApprovalHistoryMapper {
	return &ApprovalHistoryMapper{}
}

func (m *ApprovalHistoryMapper) ToModel(h *entity.ApprovalHistory) *model.PaymentApprovalHistory {
	if h == nil {
		return nil
	}
	return &model.PaymentApprovalHistory{
		Id:               h.Id,
		RequestId:        h.RequestId,
		Sequence:         h.Sequence,
		Action:           h.Action,
		ActionByUserId:   h.ActionByUserId,
		AssignedToUserId: h.AssignedToUserId,
		Notes:            h.Notes,
		ActionDate:       h.ActionDate,
		Metadata: datatypes.NewJSONType(model.HistoryTransition{
			FromStatusId: h.Transition.FromStatusId,
			ToStatusId:   h.Transition.ToStatusId,
			FromLevelId:  h.Transition.FromLevelId,
			ToLevelId:    h.Transition.ToLevelId,
		}),
	}
}

func (m *ApprovalHistoryMapper) ToEntity(h *model.PaymentApprovalHistory) *entity.ApprovalHistory {
	if h == nil {
		return nil
	}
	t := h.Metadata.Data()
	return &entity.ApprovalHistory{
		Id:               h.Id,
		RequestId:        h.RequestId,
		Sequence:         h.Sequence,
		Action:           h.Action,
		ActionByUserId:   h.ActionByUserId,
		AssignedToUserId: h.AssignedToUserId,
		Notes:            h.Notes,
		ActionDate:       h.ActionDate,
		Transition: entity.HistoryTransition{
			FromStatusId: t.FromStatusId,
			ToStatusId:   t.ToStatusId,
			FromLevelId:  t.FromLevelId,
			ToLevelId:    t.ToLevelId,
		},
	}
}

func (m *ApprovalHistoryMapper) RowsToEntities(rows []*model.PaymentApprovalHistoryRow) []*entity.ApprovalHistory {
	out := make([]*entity.ApprovalHistory, 0, len(rows))
	for _, r := range rows {
		e := m.ToEntity(&r.PaymentApprovalHistory)
		e.ActionByName = displayName(r.ActionByFirstName, r.ActionByLastName, r.ActionByUsername)
		e.AssignedToName = displayName(r.AssignedToFirstName, r.AssignedToLastName, r.AssignedToUsername)
		out = append(out, e)
	}
	return out
}

func displayName(first, last, username *string) string {
	name := strings.TrimSpace(deref(first) + " " + deref(last))
	if name != "" {
		return name
	}
	return deref(username)
}
