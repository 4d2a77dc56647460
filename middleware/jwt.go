package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docqa-be/types"
	"github.com/tieubaoca/docqa-be/utils"
)

const OperatorContextKey = "operator"

// AdminAuthMiddleware guards the ingestion and diagnostics routes. The token
// comes from the operator login endpoint.
func AdminAuthMiddleware(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Authorization header is required",
		})
		return
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Authorization header format must be Bearer {token}",
		})
		return
	}

	claims, err := utils.ParseOperatorToken(parts[1])
	if err != nil || claims.Role != "admin" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Invalid admin token",
		})
		return
	}

	c.Set(OperatorContextKey, claims)
	c.Next()
}
