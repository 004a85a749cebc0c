package server

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"sensei/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that a helper already wrote an error response to
// the client. Handlers should return nil when they see it.
var errResponseWritten = errors.New("error response already written")

// parseID parses a numeric path parameter. On failure it writes a 400 response
// and returns errResponseWritten, so the handler can simply `return nil`.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(fmt.Sprintf("Invalid %s", humanizeParam(param))))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam turns a camelCase route param into words for error messages,
// e.g. "commentId" -> "comment id".
func humanizeParam(param string) string {
	words := splitCamel(param)
	return strings.ToLower(strings.Join(words, " "))
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// isAdmin reports whether the user has the admin role.
func (s *Server) isAdmin(c *fiber.Ctx, userID uint) (bool, error) {
	return s.isAdminByUserID(c.UserContext(), userID)
}

// isAdminByUserID looks up only the role column; services use this as their
// ownership-override check.
func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("role").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}
