package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/middleware"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// teacherIDFor resolves whose sessions a request addresses. Admins may pick
// a teacher with ?teacherId.
func teacherIDFor(c *gin.Context, claims *models.JWTClaims) string {
	if claims.Role == models.RoleAdmin {
		if id := strings.TrimSpace(c.Query("teacherId")); id != "" {
			return id
		}
	}
	return claims.TeacherID
}
