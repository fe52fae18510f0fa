package controller

import (
	"clipstream-be/internal/dto"
	"clipstream-be/internal/pkg/serverutils"
	"clipstream-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChannelController interface {
	RegisterRoutes(r fiber.Router)
	GetVideos(ctx *fiber.Ctx) error
}

type channelController struct {
	videoService service.IVideoService
}

func NewChannelController(videoService service.IVideoService) IChannelController {
	return &channelController{
		videoService: videoService,
	}
}

func (c *channelController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/channel/v1")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Use(serverutils.VisitorMiddleware)
	h.Get(":id/videos", c.GetVideos)
}

func (c *channelController) GetVideos(ctx *fiber.Ctx) error {
	channelId := ctx.Params("id")

	var req dto.ChannelVideosQuery
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.videoService.GetChannelVideos(ctx.Context(), channelId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get channel videos", res))
}
