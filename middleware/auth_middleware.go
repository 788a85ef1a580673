package middleware

import (
	"github.com/Dasakami/course-wor-ruslan/auth"
	"github.com/Dasakami/course-wor-ruslan/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Protected verifies the bearer token's signature and expiry. Purpose and
// subject resolution happen in CurrentUser, which must follow it.
func Protected(tokens *auth.TokenService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   tokens.Secret(),
		ErrorHandler: jwtError,
	})
}

// jwtError answers 401 for every failed credential, missing ones included.
// A request without a token is unauthenticated, not malformed.
func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// CurrentUser rejects non-access tokens, resolves the subject against the
// users table and stores the record in c.Locals("currentUser"). A refresh
// token presented as bearer auth fails here, not in Protected.
func CurrentUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Locals("user").(*jwt.Token)
		claims := token.Claims.(jwt.MapClaims)

		purpose, _ := claims["type"].(string)
		if purpose != auth.PurposeAccess {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired JWT"})
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired JWT"})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}

		c.Locals("currentUser", user)
		return c.Next()
	}
}

// RoleRequired is an exact-match check on the resolved user's role. There
// is no hierarchy; admin passes neither the teacher nor the student gate.
func RoleRequired(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals("currentUser").(models.User)
		if user.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: " + role + " access required",
			})
		}
		return c.Next()
	}
}

func TeacherRequired() fiber.Handler {
	return RoleRequired(models.RoleTeacher)
}

func StudentRequired() fiber.Handler {
	return RoleRequired(models.RoleStudent)
}
