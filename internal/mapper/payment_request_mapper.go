package mapper

import (
	"impes-be/internal/entity"
	"impes-be/internal/model"
)

type PaymentRequestMapper struct{}

func NewPaymentRequestMapper() *PaymentRequestMapper {
	return &PaymentRequestMapper{}
}

func (m *PaymentRequestMapper) ToEntity(r *model.PaymentRequest) *entity.PaymentRequest {
	if r == nil {
		return nil
	}
	return &entity.PaymentRequest{
		Id:                     r.Id,
		ProjectId:              r.ProjectId,
		ContractorId:           r.ContractorId,
		Amount:                 r.Amount,
		Description:            r.Description,
		UserId:                 r.UserId,
		PaymentStatusId:        r.PaymentStatusId,
		CurrentApprovalLevelId: r.CurrentApprovalLevelId,
		Voided:                 r.Voided,
		Version:                r.Version,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}

func (m *PaymentRequestMapper) ToModel(r *entity.PaymentRequest) *model.PaymentRequest {
	if r == nil {
		return nil
	}
	return &model.PaymentRequest{
		Id:                     r.Id,
		ProjectId:              r.ProjectId,
		ContractorId:           r.ContractorId,
		Amount:                 r.Amount,
		Description:            r.Description,
		UserId:                 r.UserId,
		PaymentStatusId:        r.PaymentStatusId,
		CurrentApprovalLevelId: r.CurrentApprovalLevelId,
		Voided:                 r.Voided,
		Version:                r.Version,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}

func (m *PaymentRequestMapper) RowToSummary(r *model.PaymentRequestRow) *entity.PaymentRequestSummary {
	if r == nil {
		return nil
	}
	return &entity.PaymentRequestSummary{
		PaymentRequest:   *m.ToEntity(&r.PaymentRequest),
		StatusName:       r.StatusName,
		StatusCode:       entity.StatusCode(r.StatusCode),
		CurrentLevelName: r.CurrentLevelName,
	}
}

func (m *PaymentRequestMapper) RowsToSummaries(rows []*model.PaymentRequestRow) []*entity.PaymentRequestSummary {
	out := make([]*entity.PaymentRequestSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, m.RowToSummary(r))
	}
	return out
}

func (m *PaymentRequestMapper) MilestonesToModels(items []*entity.PaymentRequestMilestone) []*model.PaymentRequestMilestone {
	out := make([]*model.PaymentRequestMilestone, 0, len(items))
	for _, i := range items {
		out = append(out, &model.PaymentRequestMilestone{
			Id:         i.Id,
			RequestId:  i.RequestId,
			ActivityId: i.ActivityId,
			Status:     i.Status,
			UserId:     i.UserId,
		})
	}
	return out
}

func (m *PaymentRequestMapper) MilestonesToEntities(items []*model.PaymentRequestMilestone) []*entity.PaymentRequestMilestone {
	out := make([]*entity.PaymentRequestMilestone, 0, len(items))
	for _, i := range items {
		out = append(out, &entity.PaymentRequestMilestone{
			Id:         i.Id,
			RequestId:  i.RequestId,
			ActivityId: i.ActivityId,
			Status:     i.Status,
			UserId:     i.UserId,
			CreatedAt:  i.CreatedAt,
		})
	}
	return out
}

func (m *PaymentRequestMapper) DocumentsToModels(items []*entity.PaymentRequestDocument) []*model.PaymentRequestDocument {
	out := make([]*model.PaymentRequestDocument, 0, len(items))
	for _, i := range items {
		out = append(out, &model.PaymentRequestDocument{
			Id:           i.Id,
			RequestId:    i.RequestId,
			DocumentType: i.DocumentType,
			DocumentPath: i.DocumentPath,
			Description:  i.Description,
			UserId:       i.UserId,
		})
	}
	return out
}

func (m *PaymentRequestMapper) DocumentsToEntities(items []*model.PaymentRequestDocument) []*entity.PaymentRequestDocument {
	out := make([]*entity.PaymentRequestDocument, 0, len(items))
	for _, i := range items {
		out = append(out, &entity.PaymentRequestDocument{
			Id:           i.Id,
			RequestId:    i.RequestId,
			DocumentType: i.DocumentType,
			DocumentPath: i.DocumentPath,
			Description:  i.Description,
			UserId:       i.UserId,
			CreatedAt:    i.CreatedAt,
		})
	}
	return out
}

func (m *PaymentRequestMapper) InspectionTeamToModels(items []*entity.InspectionMember) []*model.PaymentRequestInspectionMember {
	out := make([]*model.PaymentRequestInspectionMember, 0, len(items))
	for _, i := range items {
		out = append(out, &model.PaymentRequestInspectionMember{
			Id:        i.Id,
			RequestId: i.RequestId,
			StaffId:   i.StaffId,
			Name:      i.Name,
			Role:      i.Role,
		})
	}
	return out
}

func (m *PaymentRequestMapper) InspectionTeamToEntities(items []*model.PaymentRequestInspectionMember) []*entity.InspectionMember {
	out := make([]*entity.InspectionMember, 0, len(items))
	for _, i := range items {
		out = append(out, &entity.InspectionMember{
			Id:        i.Id,
			RequestId: i.RequestId,
			StaffId:   i.StaffId,
			Name:      i.Name,
			Role:      i.Role,
		})
	}
	return out
}

func (m *PaymentRequestMapper) ItemApprovalToModel(a *entity.ItemApproval) *model.PaymentRequestItemApproval {
	return &model.PaymentRequestItemApproval{
		Id:               a.Id,
		RequestId:        a.RequestId,
		MilestoneId:      a.MilestoneId,
		ApprovalLevelId:  a.ApprovalLevelId,
		Decision:         string(a.Decision),
		Notes:            a.Notes,
		ApprovedByUserId: a.ApprovedByUserId,
		CreatedAt:        a.CreatedAt,
	}
}

func (m *PaymentRequestMapper) ItemApprovalsToEntities(items []*model.PaymentRequestItemApproval) []*entity.ItemApproval {
	out := make([]*entity.ItemApproval, 0, len(items))
	for _, i := range items {
		out = append(out, &entity.ItemApproval{
			Id:               i.Id,
			RequestId:        i.RequestId,
			MilestoneId:      i.MilestoneId,
			ApprovalLevelId:  i.ApprovalLevelId,
			Decision:         entity.ItemDecision(i.Decision),
			Notes:            i.Notes,
			ApprovedByUserId: i.ApprovedByUserId,
			CreatedAt:        i.CreatedAt,
		})
	}
	return out
}
