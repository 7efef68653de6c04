package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderName 是上游会话层注入的用户身份头。
	// 认证本身由外部会话层负责，这里只做格式与存在性校验。
	HeaderName = "X-User-ID"

	// UserIDKey 是用户ID在Gin上下文中的键名。
	UserIDKey = "userID"
)

// RequireUserMiddleware 校验请求头中的用户身份并放入Gin上下文。
// 缺失或格式错误直接拒绝，引用不存在的用户交由具体Handler返回404。
func RequireUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderName)
		if userID == "" || !IsValidUUID(userID) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "缺少或非法的用户身份"})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// OptionalUserMiddleware 读取用户身份头（若存在且合法）放入上下文，不拒绝请求。
// 用于排行榜这类匿名可看、登录后附带个人名次的接口。
func OptionalUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderName)
		if userID != "" && IsValidUUID(userID) {
			c.Set(UserIDKey, userID)
		}
		c.Next()
	}
}

// CurrentUserID 从Gin上下文中取出用户ID。
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
