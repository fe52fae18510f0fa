package controller

import (
	"clipstream-be/internal/pkg/serverutils"
	"clipstream-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVideoController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type videoController struct {
	videoService service.IVideoService
}

func NewVideoController(videoService service.IVideoService) IVideoController {
	return &videoController{
		videoService: videoService,
	}
}

func (c *videoController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/video/v1")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Use(serverutils.VisitorMiddleware)
	h.Get(":id", c.Show)
}

func (c *videoController) Show(ctx *fiber.Ctx) error {
	visitorId := serverutils.VisitorId(ctx)
	videoId := ctx.Params("id")

	res, err := c.videoService.GetDetail(ctx.Context(), visitorId, videoId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get video", res))
}
