package completion

import (
	"time"

	"gorm.io/gorm"
)

// Frequency 定义了目标的打卡频率枚举。
type Frequency string

const (
	// FrequencyDaily 表示每日目标，一天一个周期。
	FrequencyDaily Frequency = "daily"
	// FrequencyWeekly 表示每周目标，周期为周日开始的一周。
	FrequencyWeekly Frequency = "weekly"
)

// IsValid 判断频率取值是否合法。
func (f Frequency) IsValid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// Completion 是完成台账中的一行：某用户在某周期内完成了某目标一次。
// 行一旦写入即不可变；唯一的删除路径是目标删除时的级联。
// (goal_id, user_id, period_key) 上的唯一索引是周期幂等性的最终防线，
// 并发的重复完成由存储层裁决为一成一败，应用层不再做CAS。
type Completion struct {
	gorm.Model

	GoalID string `gorm:"type:varchar(36);index;uniqueIndex:idx_completion_period" json:"goal_id"`
	UserID string `gorm:"type:varchar(36);index;uniqueIndex:idx_completion_period" json:"user_id"`

	// CompletedDate 是动作被记录的参考日期（日粒度）。
	CompletedDate time.Time `json:"completed_date"`

	// PeriodKey 是本次完成所属周期的键：
	// 每日目标为当天日期，每周目标为所在周的周日。
	PeriodKey string `gorm:"type:varchar(10);uniqueIndex:idx_completion_period" json:"period_key"`

	// PointsEarned 是本次完成按价目表入账的积分（每日10，每周50）。
	PointsEarned int `json:"points_earned"`
}
