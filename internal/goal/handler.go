package goal

import (
	"errors"
	"net/http"
	"time"

	"github.com/SlpAus/questify-backend/internal/completion"
	"github.com/SlpAus/questify-backend/internal/user"
	"github.com/SlpAus/questify-backend/pkg/calendar"
	"github.com/gin-gonic/gin"
)

// CreateGoalRequestBody 定义了创建目标接口的请求体。
// deadline使用日期格式（如2026-09-30），省略表示无截止日期。
type CreateGoalRequestBody struct {
	Title       string `json:"title" binding:"required,min=1,max=128"`
	Description string `json:"description" binding:"max=1024"`
	Category    string `json:"category" binding:"max=64"`
	Frequency   string `json:"frequency" binding:"required,oneof=daily weekly"`
	Deadline    string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
}

// CreateGoalHandler 处理创建目标。
func CreateGoalHandler(c *gin.Context) {
	var body CreateGoalRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	var deadline *time.Time
	if body.Deadline != "" {
		d, err := time.ParseInLocation(calendar.DateLayout, body.Deadline, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "非法的截止日期"})
			return
		}
		deadline = &d
	}

	g, err := Create(user.CurrentUserID(c), body.Title, body.Description, body.Category,
		completion.Frequency(body.Frequency), deadline)
	if err != nil {
		if errors.Is(err, ErrInvalidFrequency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的目标频率"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建目标失败"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": g})
}

// ListGoalsHandler 返回当前用户的目标列表。
func ListGoalsHandler(c *gin.Context) {
	goals, err := ListForUser(user.CurrentUserID(c), calendar.Today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询目标列表失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// CompleteTaskHandler 处理打卡动作。
// 同周期内重复打卡返回409，聚合状态保持不变。
func CompleteTaskHandler(c *gin.Context) {
	result, err := CompleteTask(user.CurrentUserID(c), c.Param("id"), calendar.Today())
	if err != nil {
		switch {
		case errors.Is(err, ErrGoalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "目标不存在"})
		case errors.Is(err, completion.ErrDuplicateCompletion):
			c.JSON(http.StatusConflict, gin.H{"error": "本周期内已完成过该任务"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "打卡失败"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteGoalHandler 处理删除目标，返回退回的积分数。
func DeleteGoalHandler(c *gin.Context) {
	refunded, err := DeleteGoal(user.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "目标不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除目标失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "目标已删除", "pointsRefunded": refunded})
}

// GetProgressHandler 返回当前周期的完成进度。
func GetProgressHandler(c *gin.Context) {
	report, err := Progress(user.CurrentUserID(c), calendar.Today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询进度失败"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetFailureAlertsHandler 返回进度落后提醒。
func GetFailureAlertsHandler(c *gin.Context) {
	alerts, err := FailureAlerts(user.CurrentUserID(c), calendar.Today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询落后提醒失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
