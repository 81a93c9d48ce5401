package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"impes-be/internal/controller"
	"impes-be/internal/dto"
	"impes-be/internal/entity"
	"impes-be/internal/pkg/logger"
	"impes-be/internal/pkg/serverutils"
	"impes-be/internal/repository/memory"
	"impes-be/internal/repository/unitofwork"
	"impes-be/internal/service"
	"impes-be/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-test-secret"

type api struct {
	app      *fiber.App
	verifier *serverutils.TokenVerifier
	wf       *testutil.Workflow
}

func newAPI(t *testing.T) *api {
	t.Helper()
	db := testutil.NewDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	wf := testutil.SeedWorkflow(t, factory)
	log := logger.NewNopLogger()

	registry := service.NewWorkflowRegistry(factory, memory.NewWorkflowTableCache(time.Minute), nil, log)
	publisher := service.NewPaymentEventPublisher(nil, log)
	requests := service.NewPaymentRequestService(factory, registry, publisher, entity.PrivilegePaymentRequestReadAll, log)

	verifier := serverutils.NewTokenVerifier(testSecret, "impes-test")
	auth := verifier.Middleware()

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.NewErrorHandler(log)})
	group := app.Group("/api")
	controller.NewPaymentRequestController(
		requests,
		service.NewApprovalService(factory, registry, publisher, log),
		service.NewApprovalHistoryService(factory),
		service.NewSettlementService(factory, registry, publisher, log),
		auth,
	).RegisterRoutes(group)
	controller.NewProjectAssignmentController(requests, auth).RegisterRoutes(group)
	controller.NewApprovalLevelController(service.NewApprovalLevelService(factory, registry, log), auth).RegisterRoutes(group)

	return &api{app: app, verifier: verifier, wf: wf}
}

func (a *api) token(t *testing.T, p *entity.Principal) string {
	t.Helper()
	token, err := a.verifier.Sign(serverutils.AuthClaims{
		Id:           p.UserId,
		Username:     p.Username,
		RoleId:       p.RoleId,
		RoleName:     p.RoleName,
		Privileges:   p.Privileges.Names(),
		ContractorId: p.ContractorId,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)
	return token
}

func (a *api) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestPaymentRequestRoutes_ProjectScopedRead(t *testing.T) {
	a := newAPI(t)
	projectId, contractorId := uuid.New(), uuid.New()

	submitter := a.token(t, a.wf.SubmitterPrincipal(nil, entity.PrivilegePaymentRequestCreate))
	status, body := a.do(t, http.MethodPost, "/api/payment-requests", submitter, dto.SubmitPaymentRequest{
		ProjectId:    projectId,
		ContractorId: contractorId,
		Amount:       9800,
		Description:  "Foundation works",
		Activities:   []uuid.UUID{uuid.New()},
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	var created serverutils.BaseResponse[dto.SubmitPaymentResponse]
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Submitted", created.Data.StatusName)
	path := "/api/payment-requests/request/" + created.Data.RequestId.String()

	contractor := a.token(t, a.wf.SubmitterPrincipal(&contractorId, entity.PrivilegePaymentRequestRead))
	status, body = a.do(t, http.MethodGet, path, contractor, nil)
	assert.Equal(t, http.StatusForbidden, status, string(body))

	var failure serverutils.ErrorBody
	require.NoError(t, json.Unmarshal(body, &failure))
	assert.Equal(t, "AuthorizationError", failure.Error)

	admin := a.token(t, a.wf.Reviewer(1, entity.PrivilegeProjectAssignContractor))
	status, body = a.do(t, http.MethodPost, "/api/projects/"+projectId.String()+"/contractors", admin, dto.AssignContractorRequest{ContractorId: contractorId})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = a.do(t, http.MethodGet, path, contractor, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	var detail serverutils.BaseResponse[dto.PaymentRequestDetailResponse]
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, projectId, detail.Data.ProjectId)
	assert.Len(t, detail.Data.Milestones, 1)
}

func TestPaymentRequestRoutes_ActionErrors(t *testing.T) {
	a := newAPI(t)

	status, _ := a.do(t, http.MethodPut, "/api/payment-requests/"+uuid.NewString()+"/action", "", dto.PaymentActionRequest{Action: "Approve"})
	assert.Equal(t, http.StatusUnauthorized, status)

	noUpdate := a.token(t, a.wf.Reviewer(1))
	status, _ = a.do(t, http.MethodPut, "/api/payment-requests/"+uuid.NewString()+"/action", noUpdate, dto.PaymentActionRequest{Action: "Approve"})
	assert.Equal(t, http.StatusForbidden, status)

	reviewer := a.token(t, a.wf.Reviewer(1, entity.PrivilegePaymentRequestUpdate))
	status, _ = a.do(t, http.MethodPut, "/api/payment-requests/not-a-uuid/action", reviewer, dto.PaymentActionRequest{Action: "Approve"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, http.MethodPut, "/api/payment-requests/"+uuid.NewString()+"/action", reviewer, dto.PaymentActionRequest{Action: "Approve"})
	assert.Equal(t, http.StatusNotFound, status)

	status, body := a.do(t, http.MethodPut, "/api/payment-requests/"+uuid.NewString()+"/action", reviewer, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status, string(body))
}

func TestApprovalWorkflowRoute(t *testing.T) {
	a := newAPI(t)
	reader := a.token(t, a.wf.Reviewer(1, entity.PrivilegeApprovalLevelRead))

	status, body := a.do(t, http.MethodGet, "/api/approval-workflow", reader, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	var res serverutils.BaseResponse[dto.WorkflowResponse]
	require.NoError(t, json.Unmarshal(body, &res))
	assert.True(t, res.Data.Healthy)
	assert.Len(t, res.Data.Levels, 3)
}
