package leaderboard

import (
	"time"

	"gorm.io/gorm"
)

// MonthlyEntry 是月度排行榜中一个用户的参赛行。
// 首次得分或首次查看排行榜时惰性创建；永不删除，月度结算只清零。
// Points 永远不为负：退款按 max(0, points-退款额) 截断。
type MonthlyEntry struct {
	gorm.Model

	UserID      string    `gorm:"type:varchar(36);uniqueIndex"`
	Points      int
	LastUpdated time.Time
}

// HistoryEntry 是月度结算写入的快照行，每个用户每月至多一行（追加式）。
// FinalPoints 可能被此后的目标删除退款减少，但同样不会低于零。
type HistoryEntry struct {
	gorm.Model

	UserID      string `gorm:"type:varchar(36);index;uniqueIndex:idx_history_once"`
	Month       int    `gorm:"uniqueIndex:idx_history_once"`
	Year        int    `gorm:"uniqueIndex:idx_history_once"`
	FinalPoints int
	Rank        int
}
