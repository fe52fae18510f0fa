package controller

import (
	"clipstream-be/internal/dto"
	"clipstream-be/internal/pkg/serverutils"
	"clipstream-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IShortsController interface {
	RegisterRoutes(r fiber.Router)
	GetShorts(ctx *fiber.Ctx) error
}

type shortsController struct {
	shortsService service.IShortsService
}

func NewShortsController(shortsService service.IShortsService) IShortsController {
	return &shortsController{
		shortsService: shortsService,
	}
}

func (c *shortsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/shorts/v1")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Use(serverutils.VisitorMiddleware)
	h.Get(":id?", c.GetShorts)
}

func (c *shortsController) GetShorts(ctx *fiber.Ctx) error {
	visitorId := serverutils.VisitorId(ctx)
	seedId := ctx.Params("id")

	var req dto.ShortsQuery
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.shortsService.GetShorts(ctx.Context(), visitorId, seedId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get shorts", res))
}
