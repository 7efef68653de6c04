package leaderboard

import (
	"fmt"
	"time"

	"github.com/SlpAus/questify-backend/internal/badge"
	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/SlpAus/questify-backend/pkg/calendar"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RunMonthlyRollover 执行一次月度结算，归档刚结束的那个月：
//  1. 读出积分大于零的参赛行并排名
//     （积分降序；同分按账号创建时间升序、UUID升序——显式且稳定的平局规则）；
//  2. 为每行条件写入一条历史快照（该用户该月已有快照则跳过）；
//  3. 给第一名授予"Leaderboard King/Queen"徽章（集合插入，已持有则跳过）；
//  4. 把所有参赛行清零。
//
// 全程在单个数据库事务内完成，且历史写入自带(user,month,year)唯一键，
// 崩溃后重跑不会产生重复的历史行。返回归档的行数。
func RunMonthlyRollover(now time.Time) (int, error) {
	month, year := calendar.PreviousMonth(now)

	archived := 0
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var ranked []struct {
			UserID string
			Points int
		}
		err := tx.Model(&MonthlyEntry{}).
			Select("monthly_entries.user_id, monthly_entries.points").
			Joins("JOIN users ON users.uuid = monthly_entries.user_id").
			Where("monthly_entries.points > 0").
			Order("monthly_entries.points DESC, users.created_at ASC, users.uuid ASC").
			Scan(&ranked).Error
		if err != nil {
			return fmt.Errorf("读取月度排行榜失败: %w", err)
		}

		for i, row := range ranked {
			history := HistoryEntry{
				UserID:      row.UserID,
				Month:       month,
				Year:        year,
				FinalPoints: row.Points,
				Rank:        i + 1,
			}
			// DoNothing: 重跑时已归档的行原样保留
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}, {Name: "year"}},
				DoNothing: true,
			}).Create(&history)
			if result.Error != nil {
				return fmt.Errorf("写入历史榜单失败: %w", result.Error)
			}
			if result.RowsAffected > 0 {
				archived++
			}
		}

		if len(ranked) > 0 {
			if _, err := badge.Grant(tx, ranked[0].UserID, badge.TypeLeaderboardRoyal); err != nil {
				return err
			}
		}

		err = tx.Model(&MonthlyEntry{}).Where("1 = 1").
			Updates(map[string]interface{}{
				"points":       0,
				"last_updated": time.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("清零月度积分失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// 结算后整体重建缓存，与清零后的SQL状态对齐
	if database.IsRedisHealthy() {
		if err := RebuildCache(); err != nil {
			fmt.Printf("警告: 月度结算后重建排行榜缓存失败: %v\n", err)
		}
	}

	fmt.Printf("月度结算完成，归档了 %d 条 %d年%d月 的榜单记录。\n", archived, year, month)
	return archived, nil
}
