package service

import (
	"impes-be/internal/dto"
	"impes-be/internal/entity"
)

func toPaymentRequestSummaryResponse(s *entity.PaymentRequestSummary) dto.PaymentRequestSummaryResponse {
	return dto.PaymentRequestSummaryResponse{
		RequestId:              s.Id,
		ProjectId:              s.ProjectId,
		ContractorId:           s.ContractorId,
		Amount:                 s.Amount,
		Description:            s.Description,
		UserId:                 s.UserId,
		PaymentStatusId:        s.PaymentStatusId,
		StatusName:             s.StatusName,
		CurrentApprovalLevelId: s.CurrentApprovalLevelId,
		CurrentLevelName:       s.CurrentLevelName,
		Version:                s.Version,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}

func toPaymentRequestSummaryResponses(summaries []*entity.PaymentRequestSummary) []*dto.PaymentRequestSummaryResponse {
	result := make([]*dto.PaymentRequestSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		res := toPaymentRequestSummaryResponse(s)
		result = append(result, &res)
	}
	return result
}

func toItemApprovalResponse(a *entity.ItemApproval) dto.ItemApprovalResponse {
	return dto.ItemApprovalResponse{
		Id:               a.Id,
		MilestoneId:      a.MilestoneId,
		ApprovalLevelId:  a.ApprovalLevelId,
		Decision:         string(a.Decision),
		Notes:            a.Notes,
		ApprovedByUserId: a.ApprovedByUserId,
		CreatedAt:        a.CreatedAt,
	}
}

func toPaymentDetailsResponse(d *entity.PaymentDetails) *dto.PaymentDetailsResponse {
	if d == nil {
		return nil
	}
	return &dto.PaymentDetailsResponse{
		DetailId:      d.Id,
		RequestId:     d.RequestId,
		PaymentMode:   d.PaymentMode,
		BankName:      d.BankName,
		AccountNumber: d.AccountNumber,
		TransactionId: d.TransactionId,
		Notes:         d.Notes,
		PaidByUserId:  d.PaidByUserId,
		PaidAt:        d.PaidAt,
	}
}

func toPaymentRequestDetailResponse(d *entity.PaymentRequestDetail) *dto.PaymentRequestDetailResponse {
	res := &dto.PaymentRequestDetailResponse{
		PaymentRequestSummaryResponse: toPaymentRequestSummaryResponse(&d.PaymentRequestSummary),
		SubmitterName:                 d.SubmitterName,
		SubmitterRoleName:             d.SubmitterRoleName,
		CurrentLevel:                  toApprovalLevelResponse(d.CurrentLevel),
		Milestones:                    make([]dto.MilestoneResponse, 0, len(d.Milestones)),
		Documents:                     make([]dto.DocumentResponse, 0, len(d.Documents)),
		InspectionTeam:                make([]dto.InspectionMemberResponse, 0, len(d.InspectionTeam)),
		ItemApprovals:                 make([]dto.ItemApprovalResponse, 0, len(d.ItemApprovals)),
		PaymentDetails:                toPaymentDetailsResponse(d.PaymentDetails),
	}

	for _, m := range d.Milestones {
		res.Milestones = append(res.Milestones, dto.MilestoneResponse{
			Id:         m.Id,
			ActivityId: m.ActivityId,
			Status:     m.Status,
			UserId:     m.UserId,
		})
	}
	for _, doc := range d.Documents {
		res.Documents = append(res.Documents, dto.DocumentResponse{
			Id:           doc.Id,
			DocumentType: doc.DocumentType,
			DocumentPath: doc.DocumentPath,
			Description:  doc.Description,
			UserId:       doc.UserId,
		})
	}
	for _, m := range d.InspectionTeam {
		res.InspectionTeam = append(res.InspectionTeam, dto.InspectionMemberResponse{
			Id:      m.Id,
			StaffId: m.StaffId,
			Name:    m.Name,
			Role:    m.Role,
		})
	}
	for _, a := range d.ItemApprovals {
		res.ItemApprovals = append(res.ItemApprovals, toItemApprovalResponse(a))
	}
	return res
}

func toHistoryEntryResponse(h *entity.ApprovalHistory) *dto.HistoryEntryResponse {
	return &dto.HistoryEntryResponse{
		HistoryId:        h.Id,
		RequestId:        h.RequestId,
		Sequence:         h.Sequence,
		Action:           h.Action,
		ActionByUserId:   h.ActionByUserId,
		ActionByName:     h.ActionByName,
		AssignedToUserId: h.AssignedToUserId,
		AssignedToName:   h.AssignedToName,
		Notes:            h.Notes,
		ActionDate:       h.ActionDate,
		FromStatusId:     h.Transition.FromStatusId,
		ToStatusId:       h.Transition.ToStatusId,
		FromLevelId:      h.Transition.FromLevelId,
		ToLevelId:        h.Transition.ToLevelId,
	}
}
