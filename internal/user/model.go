package user

import (
	"time"

	"gorm.io/gorm"
)

// User 定义了用户在主数据库中的持久化模型。
// 积分与连击计数器由积分账房(leaderboard)和连击追踪器(streak)独占修改，
// 注册时全部为零。
type User struct {
	// UUID 是用户的主键，由服务端生成（UUID v7）。
	UUID string `gorm:"primarykey;type:varchar(36)"`

	// Username 用于登录层识别和好友搜索，全局唯一。
	Username string `gorm:"uniqueIndex;type:varchar(64)"`

	// TotalPoints 是用户的终身总积分。
	// 注意：退款时允许变为负数，见积分账房的说明。
	TotalPoints int

	// CurrentStreak 是当前连续活跃天数。
	CurrentStreak int

	// LongestStreak 是历史最长连续活跃天数。
	// 任何更新后都必须满足 LongestStreak >= CurrentStreak。
	LongestStreak int

	// LastActivityDate 是最近一次计入连击的活动日（日粒度），可为空。
	LastActivityDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
