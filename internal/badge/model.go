package badge

import (
	"time"

	"gorm.io/gorm"
)

// Type 枚举了固定的徽章集合。
type Type string

const (
	TypeFirstSteps      Type = "First Steps"
	TypeWeekWarrior     Type = "Week Warrior"
	TypeMonthlyMaster   Type = "Monthly Master"
	TypeGoalCrusher     Type = "Goal Crusher"
	TypeSocialButterfly Type = "Social Butterfly"
	TypeHelpingHand     Type = "Helping Hand"
	TypeComebackKid     Type = "Comeback Kid"
	// TypeLeaderboardRoyal 只由月度结算授予当月第一名，评估器不处理。
	TypeLeaderboardRoyal Type = "Leaderboard King/Queen"
)

// Badge 表示一次徽章授予。
// (user_id, badge_type) 上的唯一索引使授予成为集合插入：
// 并发评估最多只有一方成功，徽章一经授予永不撤销、永不重复。
type Badge struct {
	gorm.Model

	UserID     string    `gorm:"type:varchar(36);index;uniqueIndex:idx_badge_once" json:"user_id"`
	BadgeType  Type      `gorm:"type:varchar(32);uniqueIndex:idx_badge_once" json:"badge_type"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
