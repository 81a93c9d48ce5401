package mapper

import (
	"impes-be/internal/entity"
	"impes-be/internal/model"
)

type PaymentDetailsMapper struct{}

func NewPaymentDetailsMapper() *PaymentDetailsMapper {
	return &PaymentDetailsMapper{}
}

func (m *PaymentDetailsMapper) ToEntity(d *model.PaymentDetails) *entity.PaymentDetails {
	if d == nil {
		return nil
	}
	return &entity.PaymentDetails{
		Id:            d.Id,
		RequestId:     d.RequestId,
		PaymentMode:   d.PaymentMode,
		BankName:      d.BankName,
		AccountNumber: d.AccountNumber,
		TransactionId: d.TransactionId,
		Notes:         d.Notes,
		PaidByUserId:  d.PaidByUserId,
		PaidAt:        d.PaidAt,
		UpdatedAt:     optionalTime(d.UpdatedAt),
	}
}

func (m *PaymentDetailsMapper) ToModel(d *entity.PaymentDetails) *model.PaymentDetails {
	if d == nil {
		return nil
	}
	return &model.PaymentDetails{
		Id:            d.Id,
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
