package leaderboard

import (
	"net/http"
	"time"

	"github.com/SlpAus/questify-backend/internal/user"
	"github.com/gin-gonic/gin"
)

const topLimit = 10

// HistoryResponse 是历史榜单的API响应模型。
type HistoryResponse struct {
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	FinalPoints int       `json:"finalPoints"`
	Rank        int       `json:"rank"`
	ArchivedAt  time.Time `json:"archivedAt"`
}

// GetCurrentHandler 返回本月排行榜前10名；
// 请求带用户身份时附带该用户自己的名次。
func GetCurrentHandler(c *gin.Context) {
	top, err := CurrentTop(topLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取排行榜数据失败"})
		return
	}

	resp := gin.H{"leaderboard": top}
	if userID := user.CurrentUserID(c); userID != "" {
		rank, err := RankFor(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户名次失败"})
			return
		}
		resp["userRank"] = rank
	}
	c.JSON(http.StatusOK, resp)
}

// GetHistoryHandler 返回当前用户最近12个月的历史榜单。
func GetHistoryHandler(c *gin.Context) {
	rows, err := HistoryFor(user.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取历史榜单失败"})
		return
	}

	history := make([]HistoryResponse, 0, len(rows))
	for _, r := range rows {
		history = append(history, HistoryResponse{
			Month:       r.Month,
			Year:        r.Year,
			FinalPoints: r.FinalPoints,
			Rank:        r.Rank,
			ArchivedAt:  r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// GetAllTimeHandler 返回终身总积分榜前10名。
func GetAllTimeHandler(c *gin.Context) {
	top, err := AllTimeTop(topLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取总积分榜失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": top})
}

// RunRolloverHandler 供外部调度器触发月度结算的admin接口。
func RunRolloverHandler(c *gin.Context) {
	archived, err := RunMonthlyRollover(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "月度结算失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"archivedCount": archived})
}
