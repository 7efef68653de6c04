package streak

import (
	"errors"
	"net/http"

	"github.com/SlpAus/questify-backend/internal/user"
	"github.com/SlpAus/questify-backend/pkg/calendar"
	"github.com/gin-gonic/gin"
)

// GetStreakHandler 返回当前用户的连击信息。
func GetStreakHandler(c *gin.Context) {
	u, err := user.GetByID(user.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询连击信息失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"currentStreak":    u.CurrentStreak,
		"longestStreak":    u.LongestStreak,
		"lastActivityDate": u.LastActivityDate,
	})
}

// RunDecayHandler 供外部调度器触发每日连击清扫的admin接口。
func RunDecayHandler(c *gin.Context) {
	reset, err := RunDailyDecay(calendar.Today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "连击清扫失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"usersReset": reset})
}
