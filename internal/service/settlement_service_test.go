package service_test

import (
	"context"
	"testing"

	"impes-be/internal/dto"
	"impes-be/internal/entity"
	"impes-be/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPayment_OnlyOnceAfterFinalApproval(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res := h.submit(t)
	cashier := h.wf.Reviewer(3, entity.PrivilegePaymentRequestReadAll, entity.PrivilegePaymentRequestDelete)
	payment := &dto.RecordPaymentRequest{PaymentMode: "Bank Transfer", BankName: "First Bank", TransactionId: "TX-1001"}

	_, err := h.settlement.RecordPayment(ctx, cashier, res.RequestId, payment)
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition), "got %v", err)

	h.approveTo(t, res.RequestId, 3)

	out, err := h.settlement.RecordPayment(ctx, cashier, res.RequestId, payment)
	require.NoError(t, err)
	assert.Equal(t, "Paid", out.Status)
	assert.Equal(t, "TX-1001", out.TransactionId)
	assert.Equal(t, cashier.UserId, out.PaidByUserId)

	_, err = h.settlement.RecordPayment(ctx, cashier, res.RequestId, payment)
	assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)

	current := h.load(t, res.RequestId)
	assert.Equal(t, h.wf.Statuses[entity.StatusCodePaid].Id, current.PaymentStatusId)
	assert.Nil(t, current.CurrentApprovalLevelId)

	history, err := h.history.List(ctx, res.RequestId)
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, entity.HistoryActionPaymentRecorded, history[4].Action)

	err = h.requests.Void(ctx, cashier, res.RequestId)
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	assert.Contains(t, h.publisher.Events(), "PAYMENT_RECORDED")
}

func TestUpdatePaymentDetails(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res := h.submit(t)
	cashier := h.wf.Reviewer(3, entity.PrivilegePaymentRequestReadAll)

	_, err := h.settlement.UpdatePaymentDetails(ctx, cashier, res.RequestId, &dto.UpdatePaymentDetailsRequest{PaymentMode: "Cheque"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	h.approveTo(t, res.RequestId, 3)
	_, err = h.settlement.RecordPayment(ctx, cashier, res.RequestId, &dto.RecordPaymentRequest{PaymentMode: "Bank Transfer"})
	require.NoError(t, err)

	out, err := h.settlement.UpdatePaymentDetails(ctx, cashier, res.RequestId, &dto.UpdatePaymentDetailsRequest{
		PaymentMode:   "Cheque",
		TransactionId: "CHQ-77",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cheque", out.PaymentMode)

	detail, err := h.requests.GetDetailed(ctx, cashier, res.RequestId)
	require.NoError(t, err)
	require.NotNil(t, detail.PaymentDetails)
	assert.Equal(t, "CHQ-77", detail.PaymentDetails.TransactionId)
	assert.Equal(t, "Paid", detail.StatusName)

	_, err = h.settlement.RecordPayment(ctx, cashier, uuid.New(), &dto.RecordPaymentRequest{PaymentMode: "Cash"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
