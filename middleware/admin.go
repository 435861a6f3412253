package middleware

import (
	"github.com/rohitpatel0011/course-platform/database"
	"github.com/rohitpatel0011/course-platform/models"

	"github.com/gofiber/fiber/v2"
)

// AdminMiddleware allows only users with the admin role through. It must run
// after JWTMiddleware so the caller identity is already resolved.
func AdminMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != models.RoleAdmin {
		return JsonResponse(c, fiber.StatusForbidden, false, "Admin access required!", nil)
	}

	return c.Next()
}
