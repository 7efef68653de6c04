package leaderboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/questify-backend/internal/completion"
	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/SlpAus/questify-backend/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 每次完成的积分价目表，按目标频率固定计价。
const (
	TariffDaily  = 10
	TariffWeekly = 50
)

// Tariff 返回给定频率的单次完成积分。
func Tariff(freq completion.Frequency) int {
	if freq == completion.FrequencyWeekly {
		return TariffWeekly
	}
	return TariffDaily
}

// ApplyCompletion 在给定事务中为一次完成入账：
// 用户终身总积分加points，月度参赛行upsert（不存在则以points创建）。
// 事务提交后调用方需调用SyncCacheAfterApply同步缓存增量。
func ApplyCompletion(tx *gorm.DB, userID string, points int) error {
	if err := user.AddPoints(tx, userID, points); err != nil {
		return err
	}

	entry := MonthlyEntry{
		UserID:      userID,
		Points:      points,
		LastUpdated: time.Now(),
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"points":       gorm.Expr("points + ?", points),
			"last_updated": time.Now(),
		}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("更新月度排行榜失败: %w", err)
	}
	return nil
}

// SyncCacheAfterApply 在入账事务提交后同步排行榜缓存。
func SyncCacheAfterApply(userID string, points int) {
	cacheIncrement(userID, points)
}

// RefundPoints 在给定事务中为目标删除退款：
//   - 终身总积分直接减去points，允许变负——历史账目被多记后回correct本来就可能透支；
//   - 月度参赛行与全部历史快照行截断到零下限——竞技榜面永远不显示负分。
//
// 这种不对称是规格刻意保留的设计，不要"顺手"统一两边的行为。
func RefundPoints(tx *gorm.DB, userID string, points int) error {
	if points <= 0 {
		return nil
	}

	if err := user.AddPoints(tx, userID, -points); err != nil {
		return err
	}

	// CASE表达式代替GREATEST/MAX，兼容sqlite与postgres两种驱动
	err := tx.Model(&MonthlyEntry{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"points":       gorm.Expr("CASE WHEN points - ? < 0 THEN 0 ELSE points - ? END", points, points),
			"last_updated": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("回退月度排行榜积分失败: %w", err)
	}

	err = tx.Model(&HistoryEntry{}).Where("user_id = ?", userID).
		UpdateColumn("final_points", gorm.Expr("CASE WHEN final_points - ? < 0 THEN 0 ELSE final_points - ? END", points, points)).Error
	if err != nil {
		return fmt.Errorf("回退历史榜单积分失败: %w", err)
	}
	return nil
}

// SyncCacheAfterRefund 在退款事务提交后，把截断后的月度积分写回缓存。
func SyncCacheAfterRefund(userID string) {
	var entry MonthlyEntry
	err := database.DB.Where("user_id = ?", userID).First(&entry).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("警告: 退款后读取月度积分失败(user=%s): %v\n", userID, err)
		}
		return
	}
	cacheSet(userID, entry.Points)
}

// EnsureEntry 惰性创建用户的月度参赛行（首次查看排行榜时）。
func EnsureEntry(userID string) error {
	entry := MonthlyEntry{
		UserID:      userID,
		Points:      0,
		LastUpdated: time.Now(),
	}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("创建月度参赛行失败: %w", err)
	}
	return nil
}

// RankedEntry 是当前排行榜的一行查询结果。
type RankedEntry struct {
	UserID        string `json:"userId"`
	Username      string `json:"username"`
	Points        int    `json:"points"`
	CurrentStreak int    `json:"currentStreak"`
	Rank          int    `json:"rank"`
}

// CurrentTop 返回本月积分大于零的前limit名。
// 优先走Redis ZSet快路径，缓存不可用时回退SQL。两条路径使用同一排序语义。
func CurrentTop(limit int) ([]RankedEntry, error) {
	if database.IsRedisHealthy() {
		if entries, err := currentTopFromCache(limit); err == nil {
			return entries, nil
		} else {
			fmt.Printf("警告: 排行榜缓存读取失败，回退SQL: %v\n", err)
		}
	}
	return currentTopFromDB(limit)
}

func currentTopFromCache(limit int) ([]RankedEntry, error) {
	members, err := database.RDB.ZRevRangeWithScores(database.Ctx, RankingKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]RankedEntry, 0, len(members))
	rank := 0
	for _, m := range members {
		if m.Score <= 0 {
			continue
		}
		userID, _ := m.Member.(string)
		u, err := user.GetByID(userID)
		if err != nil {
			return nil, err
		}
		rank++
		entries = append(entries, RankedEntry{
			UserID:        userID,
			Username:      u.Username,
			Points:        int(m.Score),
			CurrentStreak: u.CurrentStreak,
			Rank:          rank,
		})
	}
	return entries, nil
}

func currentTopFromDB(limit int) ([]RankedEntry, error) {
	var rows []RankedEntry
	err := database.DB.Model(&MonthlyEntry{}).
		Select("monthly_entries.user_id, users.username, monthly_entries.points, users.current_streak").
		Joins("JOIN users ON users.uuid = monthly_entries.user_id").
		Where("monthly_entries.points > 0").
		Order("monthly_entries.points DESC, users.created_at ASC, users.uuid ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询当前排行榜失败: %w", err)
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

// UserRank 是单个用户在当前榜上的名次信息。
type UserRank struct {
	Rank   int `json:"rank"`
	Points int `json:"points"`
}

// RankFor 返回用户的当月名次（积分更高的用户数+1）。
// 用户尚无参赛行时惰性创建一条零分行并返回名次0。
func RankFor(userID string) (*UserRank, error) {
	var entry MonthlyEntry
	err := database.DB.Where("user_id = ?", userID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := EnsureEntry(userID); err != nil {
				return nil, err
			}
			return &UserRank{Rank: 0, Points: 0}, nil
		}
		return nil, fmt.Errorf("查询月度积分失败: %w", err)
	}

	var ahead int64
	err = database.DB.Model(&MonthlyEntry{}).Where("points > ?", entry.Points).Count(&ahead).Error
	if err != nil {
		return nil, fmt.Errorf("计算名次失败: %w", err)
	}
	return &UserRank{Rank: int(ahead) + 1, Points: entry.Points}, nil
}

// HistoryFor 返回用户最近12个月的历史榜单。
func HistoryFor(userID string) ([]HistoryEntry, error) {
	var rows []HistoryEntry
	err := database.DB.Where("user_id = ?", userID).
		Order("year DESC, month DESC").Limit(12).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询历史榜单失败: %w", err)
	}
	return rows, nil
}

// AllTimeEntry 是终身总积分榜的一行。
type AllTimeEntry struct {
	UserID        string `json:"userId"`
	Username      string `json:"username"`
	TotalPoints   int    `json:"totalPoints"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	Rank          int    `json:"rank"`
}

// AllTimeTop 返回终身总积分前limit名。
func AllTimeTop(limit int) ([]AllTimeEntry, error) {
	var rows []AllTimeEntry
	err := database.DB.Model(&user.User{}).
		Select("uuid AS user_id, username, total_points, current_streak, longest_streak").
		Order("total_points DESC, created_at ASC, uuid ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询总积分榜失败: %w", err)
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}
