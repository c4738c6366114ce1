package controller

import (
	"ops-collab-be/internal/pkg/serverutils"
	"ops-collab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	UploadImage(ctx *fiber.Ctx) error
	UploadCover(ctx *fiber.Ctx) error
	UploadFile(ctx *fiber.Ctx) error
}

type uploadController struct {
	uploadService service.IUploadService
}

func NewUploadController(uploadService service.IUploadService) IUploadController {
	return &uploadController{
		uploadService: uploadService,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/upload/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole("admin", "leader", "member"))
	h.Post("image", c.UploadImage)
	h.Post("cover", c.UploadCover)
	h.Post("file", c.UploadFile)
}

func (c *uploadController) UploadImage(ctx *fiber.Ctx) error {
	return c.handle(ctx, service.UploadImage, "Success upload image")
}

func (c *uploadController) UploadCover(ctx *fiber.Ctx) error {
	return c.handle(ctx, service.UploadCover, "Success upload cover")
}

func (c *uploadController) UploadFile(ctx *fiber.Ctx) error {
	return c.handle(ctx, service.UploadFile, "Success upload file")
}

func (c *uploadController) handle(ctx *fiber.Ctx, kind service.UploadKind, message string) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewAppError(400, "missing file field")
	}

	res, err := c.uploadService.Save(file, kind)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(message, res))
}
