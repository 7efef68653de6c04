package goal

import (
	"math"
	"time"

	"github.com/SlpAus/questify-backend/internal/completion"
	"github.com/SlpAus/questify-backend/pkg/calendar"
)

// pacingGapThreshold 是触发落后提醒的节奏差阈值：
// 期望完成率领先实际完成率20个百分点即告警。
const pacingGapThreshold = 0.20

// Pacing 是单个目标的节奏评估结果。
type Pacing struct {
	TotalDays   int
	DaysPassed  int
	TasksNeeded int
	ExpectedPct int
	ActualPct   int

	// Behind 为true时DaysBehind给出按当前节奏折算落后的天数。
	Behind     bool
	DaysBehind int
}

// EvaluatePacing 用线性期望进度模型评估一个带截止日期的目标：
// 创建日到截止日均匀铺开，期望完成率=已过天数/总天数，
// 实际完成率=已完成次数/应完成总次数（每日目标一天一次，每周目标一周一次）。
// 纯函数，所有事实由调用方取齐后传入。
func EvaluatePacing(createdAt, deadline, today time.Time, freq completion.Frequency, completedTasks int64) Pacing {
	totalDays := calendar.DaysBetweenCeil(createdAt, deadline)
	daysPassed := calendar.DaysBetweenCeil(createdAt, today)
	if daysPassed > totalDays {
		daysPassed = totalDays
	}

	tasksNeeded := totalDays
	if freq == completion.FrequencyWeekly {
		tasksNeeded = int(math.Ceil(float64(totalDays) / 7))
	}

	var expectedRate, actualRate float64
	if totalDays > 0 {
		expectedRate = float64(daysPassed) / float64(totalDays)
	}
	if tasksNeeded > 0 {
		actualRate = float64(completedTasks) / float64(tasksNeeded)
	}

	p := Pacing{
		TotalDays:   totalDays,
		DaysPassed:  daysPassed,
		TasksNeeded: tasksNeeded,
		ExpectedPct: int(math.Round(expectedRate * 100)),
		ActualPct:   int(math.Round(actualRate * 100)),
	}

	gap := expectedRate - actualRate
	if gap >= pacingGapThreshold {
		p.Behind = true
		p.DaysBehind = int(math.Ceil(gap * float64(totalDays)))
	}
	return p
}

// FrequencyProgress 是某个频率档位的当期完成进度。
type FrequencyProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Pct       int `json:"pct"`
}

// buildProgress 把计数折算为进度条数据。
// completed来自按周期去重的台账查询，这里再截断到total以内，
// 保证目标刚被删除但台账残留的瞬间也不会出现2/1这种显示。
func buildProgress(completed int64, total int) FrequencyProgress {
	c := int(completed)
	if c > total {
		c = total
	}
	p := FrequencyProgress{Completed: c, Total: total}
	if total > 0 {
		p.Pct = int(math.Round(float64(c) / float64(total) * 100))
	}
	return p
}
