package controller

import (
	"impes-be/internal/dto"
	"impes-be/internal/entity"
	"impes-be/internal/pkg/serverutils"
	"impes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IApprovalLevelController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Workflow(ctx *fiber.Ctx) error
}

type approvalLevelController struct {
	service service.IApprovalLevelService
	auth    fiber.Handler
}

func NewApprovalLevelController(service service.IApprovalLevelService, auth fiber.Handler) IApprovalLevelController {
	return &approvalLevelController{service: service, auth: auth}
}

func (c *approvalLevelController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/approval-levels")
	h.Use(c.auth)
	h.Get("", serverutils.RequirePrivileges(entity.PrivilegeApprovalLevelRead), c.GetAll)
	h.Post("", serverutils.RequirePrivileges(entity.PrivilegeApprovalLevelCreate), c.Create)
	h.Get("/:id", serverutils.RequirePrivileges(entity.PrivilegeApprovalLevelRead), c.Show)
	h.Put("/:id", serverutils.RequirePrivileges(entity.PrivilegeApprovalLevelUpdate), c.Update)
	h.Delete("/:id", serverutils.RequirePrivileges(entity.PrivilegeApprovalLevelDelete), c.Delete)

	r.Get("/approval-workflow", c.auth, serverutils.RequirePrivileges(entity.PrivilegeApprovalLevelRead), c.Workflow)
}

func (c *approvalLevelController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all approval levels", res))
}

func (c *approvalLevelController) Show(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show approval level", res))
}

func (c *approvalLevelController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateApprovalLevelRequest
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

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Approval level created", res))
}

func (c *approvalLevelController) Update(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateApprovalLevelRequest
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

	return ctx.JSON(serverutils.SuccessResponse("Approval level updated", res))
}

func (c *approvalLevelController) Delete(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Approval level deleted", nil))
}

func (c *approvalLevelController) Workflow(ctx *fiber.Ctx) error {
	res, err := c.service.Workflow(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success compile approval workflow", res))
}
