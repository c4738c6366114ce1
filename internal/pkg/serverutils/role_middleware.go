package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole gates a route group to the listed roles. It expects
// JwtMiddleware to have run first and set the "role" local.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals("role").(string)
		if _, ok := allowed[role]; !ok {
			return ErrForbidden
		}
		return ctx.Next()
	}
}
