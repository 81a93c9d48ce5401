package controller

import (
	"impes-be/internal/dto"
	"impes-be/internal/entity"
	"impes-be/internal/pkg/serverutils"
	"impes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentStatusController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type paymentStatusController struct {
	service service.IPaymentStatusService
	auth    fiber.Handler
}

func NewPaymentStatusController(service service.IPaymentStatusService, auth fiber.Handler) IPaymentStatusController {
	return &paymentStatusController{service: service, auth: auth}
}

func (c *paymentStatusController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment-statuses")
	h.Use(c.auth)
	h.Get("", serverutils.RequirePrivileges(entity.PrivilegePaymentStatusRead), c.GetAll)
	h.Post("", serverutils.RequirePrivileges(entity.PrivilegePaymentStatusCreate), c.Create)
	h.Get("/:id", serverutils.RequirePrivileges(entity.PrivilegePaymentStatusRead), c.Show)
	h.Put("/:id", serverutils.RequirePrivileges(entity.PrivilegePaymentStatusUpdate), c.Update)
	h.Delete("/:id", serverutils.RequirePrivileges(entity.PrivilegePaymentStatusDelete), c.Delete)
}

func (c *paymentStatusController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all payment statuses", res))
}

func (c *paymentStatusController) Show(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show payment status", res))
}

func (c *paymentStatusController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePaymentStatusRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Payment status created", res))
}

func (c *paymentStatusController) Update(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdatePaymentStatusRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Payment status updated", res))
}

func (c *paymentStatusController) Delete(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Payment status deleted", nil))
}
