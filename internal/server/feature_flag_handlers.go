package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags returns the current feature flag configuration
// @Summary List feature flags
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/admin/feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	return c.JSON(fiber.Map{
		"config": s.featureFlags.Raw(),
		"flags":  s.featureFlags.Snapshot(userID),
	})
}
