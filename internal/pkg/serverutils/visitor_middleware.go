package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	VisitorCookieName = "sessionId"
	visitorCookieTTL  = 3600 // seconds, rolling
)

// VisitorMiddleware resolves a stable visitor key for feed de-duplication.
// An authenticated user_id (from OptionalJwtMiddleware) wins so the identity
// survives across devices; otherwise the sessionId cookie is used, minted on
// first contact. The cookie is re-set on every hit to roll its expiry, and
// is cross-site-safe for embedded players. This never fails a request.
func VisitorMiddleware(ctx *fiber.Ctx) error {
	if userId, ok := ctx.Locals("user_id").(string); ok && userId != "" {
		ctx.Locals("visitor_id", userId)
		return ctx.Next()
	}

	visitorId := ctx.Cookies(VisitorCookieName)
	if visitorId == "" {
		visitorId = uuid.NewString()
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     VisitorCookieName,
		Value:    visitorId,
		MaxAge:   visitorCookieTTL,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})

	ctx.Locals("visitor_id", visitorId)
	return ctx.Next()
}

// VisitorId reads the key resolved by VisitorMiddleware.
func VisitorId(ctx *fiber.Ctx) string {
	if id, ok := ctx.Locals("visitor_id").(string); ok {
		return id
	}
	return ""
}
