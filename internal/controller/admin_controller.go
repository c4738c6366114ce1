package controller

import (
	"ops-collab-be/internal/dto"
	"ops-collab-be/internal/pkg/serverutils"
	"ops-collab-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetAllUsers(ctx *fiber.Ctx) error
	UpdateRole(ctx *fiber.Ctx) error
	BanUser(ctx *fiber.Ctx) error
	GetDashboard(ctx *fiber.Ctx) error
	GetSystemLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{
		adminService: adminService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole("admin"))
	h.Get("dashboard", c.GetDashboard)
	h.Get("users", c.GetAllUsers)
	h.Put("users/:id/role", c.UpdateRole)
	h.Put("users/:id/ban", c.BanUser)
	h.Get("logs", c.GetSystemLogs)
	h.Get("logs/:id", c.GetLogDetail)
}

func (c *adminController) GetAllUsers(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 25)

	res, err := c.adminService.GetAllUsers(ctx.Context(), page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}

func (c *adminController) UpdateRole(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateRoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.UserId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.UpdateRole(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update role", fiber.Map{}))
}

func (c *adminController) BanUser(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.BanUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.UserId = id

	if err := c.adminService.BanUser(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update ban state", fiber.Map{}))
}

func (c *adminController) GetDashboard(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetDashboard(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show dashboard", res))
}

func (c *adminController) GetSystemLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 50)

	res, err := c.adminService.GetSystemLogs(ctx.Context(), level, page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list logs", res))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	logId := ctx.Params("id")

	res, err := c.adminService.GetLogDetail(ctx.Context(), logId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show log", res))
}
