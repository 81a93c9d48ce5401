package controller

import (
	"impes-be/internal/dto"
	"impes-be/internal/entity"
	"impes-be/internal/pkg/apperr"
	"impes-be/internal/pkg/serverutils"
	"impes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentRequestController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	ListAll(ctx *fiber.Ctx) error
	ListForProject(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Action(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	RecordItemApproval(ctx *fiber.Ctx) error
	RecordPayment(ctx *fiber.Ctx) error
	UpdatePaymentDetails(ctx *fiber.Ctx) error
	Void(ctx *fiber.Ctx) error
}

type paymentRequestController struct {
	requests   service.IPaymentRequestService
	approvals  service.IApprovalService
	history    service.IApprovalHistoryService
	settlement service.ISettlementService
	auth       fiber.Handler
}

func NewPaymentRequestController(
	requests service.IPaymentRequestService,
	approvals service.IApprovalService,
	history service.IApprovalHistoryService,
	settlement service.ISettlementService,
	auth fiber.Handler,
) IPaymentRequestController {
	return &paymentRequestController{
		requests:   requests,
		approvals:  approvals,
		history:    history,
		settlement: settlement,
		auth:       auth,
	}
}

func (c *paymentRequestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment-requests")
	h.Use(c.auth)
	h.Post("", serverutils.RequirePrivileges(entity.PrivilegePaymentRequestCreate), c.Submit)
	h.Get("", serverutils.RequirePrivileges(entity.PrivilegePaymentRequestReadAll), c.ListAll)
	// Project reads are authorized per project inside the service.
	h.Get("/project/:projectId", c.ListForProject)
	h.Get("/request/:id", c.Show)
	h.Put("/:id/action", serverutils.RequirePrivileges(entity.PrivilegePaymentRequestUpdate), c.Action)
	h.Get("/:id/history", serverutils.RequirePrivileges(entity.PrivilegePaymentRequestRead), c.History)
	h.Post("/:id/milestones/:milestoneId/approvals", serverutils.RequirePrivileges(entity.PrivilegePaymentRequestUpdate), c.RecordItemApproval)
	h.Post("/:id/payment-details", serverutils.RequirePrivileges(entity.PrivilegePaymentDetailsCreate), c.RecordPayment)
	h.Put("/:id/payment-details", serverutils.RequirePrivileges(entity.PrivilegePaymentDetailsUpdate), c.UpdatePaymentDetails)
	h.Delete("/:id", serverutils.RequirePrivileges(entity.PrivilegePaymentRequestDelete), c.Void)
}

func (c *paymentRequestController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitPaymentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.requests.Submit(ctx.UserContext(), serverutils.GetPrincipal(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Payment request submitted", res))
}

func (c *paymentRequestController) ListAll(ctx *fiber.Ctx) error {
	var query dto.ListPaymentRequestsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return apperr.Validation("invalid query parameters")
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	items, total, err := c.requests.ListAll(ctx.UserContext(), serverutils.GetPrincipal(ctx), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list payment requests", serverutils.PagedData[*dto.PaymentRequestSummaryResponse]{
		Items: items,
		Page:  query.Page,
		Limit: query.Limit,
		Total: total,
	}))
}

func (c *paymentRequestController) ListForProject(ctx *fiber.Ctx) error {
	projectId, err := uuidParam(ctx, "projectId")
	if err != nil {
		return err
	}

	res, err := c.requests.ListForProject(ctx.UserContext(), serverutils.GetPrincipal(ctx), projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list project payment requests", res))
}

func (c *paymentRequestController) Show(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.requests.GetDetailed(ctx.UserContext(), serverutils.GetPrincipal(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show payment request", res))
}

func (c *paymentRequestController) Action(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.PaymentActionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.approvals.Apply(ctx.UserContext(), serverutils.GetPrincipal(ctx), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Payment request "+res.Status, res))
}

func (c *paymentRequestController) History(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.history.List(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get approval history", res))
}

func (c *paymentRequestController) RecordItemApproval(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	milestoneId, err := uuidParam(ctx, "milestoneId")
	if err != nil {
		return err
	}

	var req dto.ItemApprovalRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.approvals.RecordItemApproval(ctx.UserContext(), serverutils.GetPrincipal(ctx), id, milestoneId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Item decision recorded", res))
}

func (c *paymentRequestController) RecordPayment(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.RecordPaymentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.settlement.RecordPayment(ctx.UserContext(), serverutils.GetPrincipal(ctx), id, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Payment recorded", res))
}

func (c *paymentRequestController) UpdatePaymentDetails(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdatePaymentDetailsRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.settlement.UpdatePaymentDetails(ctx.UserContext(), serverutils.GetPrincipal(ctx), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Payment details updated", res))
}

func (c *paymentRequestController) Void(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.requests.Void(ctx.UserContext(), serverutils.GetPrincipal(ctx), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Payment request voided", nil))
}
