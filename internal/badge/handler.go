package badge

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/questify-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// BadgeResponse 是单个徽章的API响应模型。
type BadgeResponse struct {
	Type       Type      `json:"type"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// GetBadgesHandler 返回当前用户已解锁的徽章。
func GetBadgesHandler(c *gin.Context) {
	badges, err := ListForUser(user.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询徽章失败"})
		return
	}

	responses := make([]BadgeResponse, 0, len(badges))
	for _, b := range badges {
		responses = append(responses, BadgeResponse{Type: b.BadgeType, UnlockedAt: b.UnlockedAt})
	}
	c.JSON(http.StatusOK, gin.H{"badges": responses})
}

// ReevaluateHandler 是挂在社交动作之后的收尾Handler：
// 前序Handler成功后（上下文中带有response），重评一次徽章并把
// 新解锁的徽章并入响应。路由层用Handler链来组合，避免social反向依赖badge。
func ReevaluateHandler(c *gin.Context) {
	resp, exists := c.Get("response")
	if !exists {
		return
	}
	payload, ok := resp.(gin.H)
	if !ok {
		payload = gin.H{}
	}

	granted, err := Evaluate(user.CurrentUserID(c))
	if err != nil {
		// 徽章评估失败不应让已成功的社交动作报错，记录后照常返回
		fmt.Printf("警告: 社交动作后的徽章重评失败: %v\n", err)
	}
	if len(granted) > 0 {
		payload["badgesUnlocked"] = granted
	}

	status := http.StatusOK
	if c.Request.Method == http.MethodPost {
		status = http.StatusCreated
	}
	c.JSON(status, payload)
}
