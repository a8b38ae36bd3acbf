package middleware

import (
	"strings"
	"surveyhub_backend/internal/config"
	"surveyhub_backend/internal/model"
	"surveyhub_backend/internal/repository"
	"surveyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// resolveUser 验签后从数据库重新读取用户，角色以库里的为准而非令牌载荷
func resolveUser(c *gin.Context, cfg *config.Config, userRepo *repository.UserRepository) *util.AuthUser {
	tokenString := extractToken(c)
	if tokenString == "" {
		return nil
	}

	claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
	if err != nil {
		return nil
	}

	user, err := userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}

	return &util.AuthUser{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}
}

func AuthMiddleware(cfg *config.Config, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := resolveUser(c, cfg, userRepo)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// TryAuthMiddleware 可选认证：带合法令牌就挂上身份，否则匿名放行
func TryAuthMiddleware(cfg *config.Config, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := resolveUser(c, cfg, userRepo); user != nil {
			c.Set("user", user)
		}
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetAuthUser(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if user.Role != model.RoleAdmin {
			util.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
