package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterRequestBody 定义了注册接口的请求体。
type RegisterRequestBody struct {
	Username string `json:"username" binding:"required,min=1,max=64"`
}

// UserResponse 是用户信息的API响应模型。
type UserResponse struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	TotalPoints      int        `json:"totalPoints"`
	CurrentStreak    int        `json:"currentStreak"`
	LongestStreak    int        `json:"longestStreak"`
	LastActivityDate *time.Time `json:"lastActivityDate"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func formatUser(u *User) UserResponse {
	return UserResponse{
		ID:               u.UUID,
		Username:         u.Username,
		TotalPoints:      u.TotalPoints,
		CurrentStreak:    u.CurrentStreak,
		LongestStreak:    u.LongestStreak,
		LastActivityDate: u.LastActivityDate,
		CreatedAt:        u.CreatedAt,
	}
}

// RegisterHandler 处理新用户注册。
func RegisterHandler(c *gin.Context) {
	var body RegisterRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	newUser, err := Register(body.Username)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "用户名已被占用"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建用户失败"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": formatUser(newUser)})
}

// GetUserHandler 返回单个用户的公开信息。
func GetUserHandler(c *gin.Context) {
	userID := c.Param("id")
	if !IsValidUUID(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法的用户ID"})
		return
	}

	u, err := GetByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询用户失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": formatUser(u)})
}
