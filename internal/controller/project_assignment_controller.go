package controller

import (
	"impes-be/internal/dto"
	"impes-be/internal/entity"
	"impes-be/internal/pkg/serverutils"
	"impes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProjectAssignmentController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Assign(ctx *fiber.Ctx) error
	Unassign(ctx *fiber.Ctx) error
}

type projectAssignmentController struct {
	service service.IPaymentRequestService
	auth    fiber.Handler
}

func NewProjectAssignmentController(service service.IPaymentRequestService, auth fiber.Handler) IProjectAssignmentController {
	return &projectAssignmentController{service: service, auth: auth}
}

func (c *projectAssignmentController) RegisterRoutes(r fiber.Router) {
	guard := []fiber.Handler{c.auth, serverutils.RequirePrivileges(entity.PrivilegeProjectAssignContractor)}
	r.Get("/projects/:projectId/contractors", append(guard, c.List)...)
	r.Post("/projects/:projectId/contractors", append(guard, c.Assign)...)
	r.Delete("/projects/:projectId/contractors/:contractorId", append(guard, c.Unassign)...)
}

func (c *projectAssignmentController) List(ctx *fiber.Ctx) error {
	projectId, err := uuidParam(ctx, "projectId")
	if err != nil {
		return err
	}

	res, err := c.service.ListContractors(ctx.UserContext(), projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list project contractors", res))
}

func (c *projectAssignmentController) Assign(ctx *fiber.Ctx) error {
	projectId, err := uuidParam(ctx, "projectId")
	if err != nil {
		return err
	}

	var req dto.AssignContractorRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AssignContractor(ctx.UserContext(), projectId, req.ContractorId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Contractor assigned", res))
}

func (c *projectAssignmentController) Unassign(ctx *fiber.Ctx) error {
	projectId, err := uuidParam(ctx, "projectId")
	if err != nil {
		return err
	}
	contractorId, err := uuidParam(ctx, "contractorId")
	if err != nil {
		return err
	}

	if err := c.service.UnassignContractor(ctx.UserContext(), projectId, contractorId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Contractor unassigned", nil))
}
