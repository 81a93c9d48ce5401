package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"impes-be/internal/dto"
	"impes-be/internal/entity"
	"impes-be/internal/pkg/logger"
	"impes-be/internal/repository/memory"
	"impes-be/internal/repository/specification"
	"impes-be/internal/repository/unitofwork"
	"impes-be/internal/service"
	"impes-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) record(event string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) PublishSubmitted(ctx context.Context, request *entity.PaymentRequest, statusName string) {
	p.record(service.EventPaymentRequestSubmitted)
}

func (p *recordingPublisher) PublishActioned(ctx context.Context, request *entity.PaymentRequest, action string, actionBy uuid.UUID, assignedTo *uuid.UUID, statusName string) {
	p.record(service.EventPaymentRequestActioned + ":" + action)
}

func (p *recordingPublisher) PublishPaymentRecorded(ctx context.Context, request *entity.PaymentRequest, details *entity.PaymentDetails) {
	p.record(service.EventPaymentRecorded)
}

func (p *recordingPublisher) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type harness struct {
	db        *gorm.DB
	factory   unitofwork.RepositoryFactory
	wf        *testutil.Workflow
	publisher *recordingPublisher
	registry  service.IWorkflowRegistry

	requests   service.IPaymentRequestService
	approvals  service.IApprovalService
	history    service.IApprovalHistoryService
	settlement service.ISettlementService
	levels     service.IApprovalLevelService
	statuses   service.IPaymentStatusService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	h := newHarnessWith(t, db, factory)
	h.wf = testutil.SeedWorkflow(t, factory)
	return h
}

// newHarnessWith wires services without seeding the registry.
func newHarnessWith(t *testing.T, db *gorm.DB, factory unitofwork.RepositoryFactory) *harness {
	t.Helper()
	log := logger.NewNopLogger()
	registry := service.NewWorkflowRegistry(factory, memory.NewWorkflowTableCache(time.Minute), nil, log)
	publisher := &recordingPublisher{}

	return &harness{
		db:         db,
		factory:    factory,
		publisher:  publisher,
		registry:   registry,
		requests:   service.NewPaymentRequestService(factory, registry, publisher, entity.PrivilegePaymentRequestReadAll, log),
		approvals:  service.NewApprovalService(factory, registry, publisher, log),
		history:    service.NewApprovalHistoryService(factory),
		settlement: service.NewSettlementService(factory, registry, publisher, log),
		levels:     service.NewApprovalLevelService(factory, registry, log),
		statuses:   service.NewPaymentStatusService(factory, registry, log),
	}
}

func (h *harness) submission(projectId uuid.UUID) *dto.SubmitPaymentRequest {
	return &dto.SubmitPaymentRequest{
		ProjectId:    projectId,
		ContractorId: uuid.New(),
		Amount:       125000.50,
		Description:  "Progress billing #1",
		Activities:   []uuid.UUID{uuid.New(), uuid.New()},
		Documents: []dto.DocumentInput{
			{DocumentType: "invoice", DocumentPath: "/docs/invoice-1.pdf"},
		},
		InspectionTeam: []dto.InspectionMemberInput{
			{StaffId: uuid.New(), Name: "Dana Site", Role: "Inspector"},
		},
	}
}

func (h *harness) submit(t *testing.T) *dto.SubmitPaymentResponse {
	t.Helper()
	res, err := h.requests.Submit(context.Background(), h.wf.SubmitterPrincipal(nil), h.submission(uuid.New()))
	require.NoError(t, err)
	return res
}

func (h *harness) act(t *testing.T, principal *entity.Principal, requestId uuid.UUID, action string) (*dto.PaymentActionResponse, error) {
	t.Helper()
	return h.approvals.Apply(context.Background(), principal, requestId, &dto.PaymentActionRequest{Action: action, Notes: action + " notes"})
}

func (h *harness) load(t *testing.T, requestId uuid.UUID) *entity.PaymentRequest {
	t.Helper()
	uow := h.factory.NewUnitOfWork(context.Background())
	found, err := uow.PaymentRequestRepository().FindOne(context.Background(), specification.ByID{ID: requestId})
	require.NoError(t, err)
	return found
}

func (h *harness) historyCount(t *testing.T, requestId uuid.UUID) int64 {
	t.Helper()
	uow := h.factory.NewUnitOfWork(context.Background())
	n, err := uow.ApprovalHistoryRepository().CountByRequestId(context.Background(), requestId)
	require.NoError(t, err)
	return n
}

func (h *harness) approveTo(t *testing.T, requestId uuid.UUID, levels int) {
	t.Helper()
	for order := 1; order <= levels; order++ {
		_, err := h.act(t, h.wf.Reviewer(order), requestId, "Approve")
		require.NoError(t, err)
	}
}
