// Package profile 提供用户资料页的聚合统计视图。
// 只读地跨越各聚合取数，自身不持有任何状态。
package profile

import (
	"errors"
	"net/http"
	"time"

	"github.com/SlpAus/questify-backend/internal/badge"
	"github.com/SlpAus/questify-backend/internal/completion"
	"github.com/SlpAus/questify-backend/internal/goal"
	"github.com/SlpAus/questify-backend/internal/leaderboard"
	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/SlpAus/questify-backend/internal/social"
	"github.com/SlpAus/questify-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// StatsResponse 是资料页统计的API响应模型。
type StatsResponse struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	TotalPoints      int        `json:"totalPoints"`
	CurrentStreak    int        `json:"currentStreak"`
	LongestStreak    int        `json:"longestStreak"`
	LastActivityDate *time.Time `json:"lastActivityDate"`
	MemberSince      time.Time  `json:"memberSince"`

	TotalGoals     int64 `json:"totalGoals"`
	CompletedTasks int64 `json:"completedTasks"`
	FriendCount    int64 `json:"friendCount"`
	BadgeCount     int64 `json:"badgeCount"`

	// MonthlyRank 为0表示本月尚未上榜。
	MonthlyRank   int `json:"monthlyRank"`
	MonthlyPoints int `json:"monthlyPoints"`
}

// GetStatsHandler 返回指定用户的资料页统计。
func GetStatsHandler(c *gin.Context) {
	userID := c.Param("id")
	if !user.IsValidUUID(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法的用户ID"})
		return
	}

	u, err := user.GetByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询用户失败"})
		return
	}

	stats := StatsResponse{
		ID:               u.UUID,
		Username:         u.Username,
		TotalPoints:      u.TotalPoints,
		CurrentStreak:    u.CurrentStreak,
		LongestStreak:    u.LongestStreak,
		LastActivityDate: u.LastActivityDate,
		MemberSince:      u.CreatedAt,
	}

	if stats.TotalGoals, err = goal.CountForUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "统计目标数失败"})
		return
	}
	if stats.CompletedTasks, err = completion.CountForUser(database.DB, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "统计完成次数失败"})
		return
	}
	if stats.FriendCount, err = social.FriendCount(database.DB, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "统计好友数失败"})
		return
	}
	if stats.BadgeCount, err = badge.CountForUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "统计徽章数失败"})
		return
	}

	rank, err := leaderboard.RankFor(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询名次失败"})
		return
	}
	stats.MonthlyRank = rank.Rank
	stats.MonthlyPoints = rank.Points

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
