package controller

import (
	"clipstream-be/internal/dto"
	"clipstream-be/internal/pkg/serverutils"
	"clipstream-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFeedController interface {
	RegisterRoutes(r fiber.Router)
	GetFeed(ctx *fiber.Ctx) error
}

type feedController struct {
	feedService service.IFeedService
}

func NewFeedController(feedService service.IFeedService) IFeedController {
	return &feedController{
		feedService: feedService,
	}
}

func (c *feedController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feed/v1")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Use(serverutils.VisitorMiddleware)
	h.Get("", c.GetFeed)
}

func (c *feedController) GetFeed(ctx *fiber.Ctx) error {
	visitorId := serverutils.VisitorId(ctx)

	var req dto.FeedQuery
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.feedService.GetFeed(ctx.Context(), visitorId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get feed", res))
}
