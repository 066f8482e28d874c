package middleware

import (
	"errors"
	"net/http"
	"strings"

	pkgAuth "backoffice/pkg/auth"

	"github.com/gin-gonic/gin"
)

const ContextOperatorIDKey = "operatorID"

func AdminAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := pkgAuth.ParseOperatorToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextOperatorIDKey, claims.SubjectID)
		c.Request = c.Request.WithContext(pkgAuth.WithOperator(c.Request.Context(), claims.SubjectID))
		c.Next()
	}
}

func ExtractBearerToken(authHeader string) (string, error) {
	if strings.TrimSpace(authHeader) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}
