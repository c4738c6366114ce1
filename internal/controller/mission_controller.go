package controller

import (
	"ops-collab-be/internal/dto"
	"ops-collab-be/internal/pkg/serverutils"
	"ops-collab-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMissionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	ListAssigned(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type missionController struct {
	missionService service.IMissionService
}

func NewMissionController(missionService service.IMissionService) IMissionController {
	return &missionController{
		missionService: missionService,
	}
}

func (c *missionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mission/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get("assigned", c.ListAssigned)
	h.Get(":id", c.Show)

	manage := serverutils.RequireRole("admin", "leader")
	h.Post("", manage, c.Create)
	h.Put(":id", manage, c.Update)
	h.Delete(":id", manage, c.Delete)
}

func (c *missionController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateMissionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.missionService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create mission", res))
}

func (c *missionController) List(ctx *fiber.Ctx) error {
	status := ctx.Query("status")

	res, err := c.missionService.List(ctx.Context(), status)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list missions", res))
}

func (c *missionController) ListAssigned(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.missionService.ListAssigned(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list assigned missions", res))
}

func (c *missionController) Show(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.missionService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show mission", res))
}

func (c *missionController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateMissionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.missionService.Update(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update mission", fiber.Map{}))
}

func (c *missionController) Delete(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.missionService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete mission", fiber.Map{}))
}
