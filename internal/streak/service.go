package streak

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/SlpAus/questify-backend/internal/user"
	"github.com/SlpAus/questify-backend/pkg/calendar"
	"gorm.io/gorm"
)

// UpdateOnCompletion 在给定事务中对用户执行一次连击推进，返回最新的当前连击。
// 只应在“合格的完成动作”后调用（当天首次完成之外的调用会命中幂等分支）。
// 读-改-写发生在调用方的事务内，由存储层的行级串行化保证不竞态。
func UpdateOnCompletion(tx *gorm.DB, userID string, today time.Time) (int, error) {
	var u user.User
	if err := tx.Where("uuid = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, user.ErrUserNotFound
		}
		return 0, fmt.Errorf("读取用户连击状态失败: %w", err)
	}

	next, changed := Advance(Snapshot{
		CurrentStreak:    u.CurrentStreak,
		LongestStreak:    u.LongestStreak,
		LastActivityDate: u.LastActivityDate,
	}, today)
	if !changed {
		return u.CurrentStreak, nil
	}

	err := tx.Model(&user.User{}).Where("uuid = ?", userID).Updates(map[string]interface{}{
		"current_streak":     next.CurrentStreak,
		"longest_streak":     next.LongestStreak,
		"last_activity_date": next.LastActivityDate,
	}).Error
	if err != nil {
		return 0, fmt.Errorf("更新用户连击状态失败: %w", err)
	}
	return next.CurrentStreak, nil
}

// RunDailyDecay 是每日一次的断签清扫：
// 把最近活动日早于昨天、且当前连击大于零的用户清零。
// 这样从不回访的用户也会被确定性地重置，而不必等他们自己触发状态机。
// 最长连击不受影响。返回被清零的用户数。
func RunDailyDecay(today time.Time) (int64, error) {
	yesterday := calendar.Yesterday(today)

	result := database.DB.Model(&user.User{}).
		Where("last_activity_date IS NOT NULL AND last_activity_date < ? AND current_streak > 0", yesterday).
		UpdateColumn("current_streak", 0)
	if result.Error != nil {
		return 0, fmt.Errorf("每日连击清扫失败: %w", result.Error)
	}

	fmt.Printf("每日连击清扫完成，重置了 %d 个用户。\n", result.RowsAffected)
	return result.RowsAffected, nil
}
