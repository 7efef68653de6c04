package completion

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/SlpAus/questify-backend/pkg/calendar"
	"gorm.io/gorm"
)

// ErrDuplicateCompletion 表示该目标在当前周期内已经完成过。
// 这是一个用户可自行纠正的状态，不是需要大声记录的错误。
var ErrDuplicateCompletion = errors.New("本周期内已完成过该任务")

// PeriodKeyFor 计算给定频率和参考日期对应的周期键。
func PeriodKeyFor(freq Frequency, ref time.Time) string {
	if freq == FrequencyWeekly {
		return calendar.WeekKey(ref)
	}
	return calendar.DayKey(ref)
}

// HasCompletedPeriod 查询台账，判断该目标在参考日期所在周期是否已被满足。
func HasCompletedPeriod(goalID, userID string, freq Frequency, ref time.Time) (bool, error) {
	var count int64
	err := database.DB.Model(&Completion{}).
		Where("goal_id = ? AND user_id = ? AND period_key = ?", goalID, userID, PeriodKeyFor(freq, ref)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("查询完成台账失败: %w", err)
	}
	return count > 0, nil
}

// Record 在给定事务中向台账写入一行完成记录。
// 若周期已被满足（包括并发竞争中落败的一方），返回ErrDuplicateCompletion。
func Record(tx *gorm.DB, goalID, userID string, freq Frequency, ref time.Time, points int) (*Completion, error) {
	row := Completion{
		GoalID:        goalID,
		UserID:        userID,
		CompletedDate: calendar.Truncate(ref),
		PeriodKey:     PeriodKeyFor(freq, ref),
		PointsEarned:  points,
	}
	if err := tx.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCompletion
		}
		return nil, fmt.Errorf("写入完成记录失败: %w", err)
	}
	return &row, nil
}

// CountForGoal 统计某目标名下的完成次数（退款计算用）。
func CountForGoal(tx *gorm.DB, goalID string) (int64, error) {
	var count int64
	err := tx.Model(&Completion{}).Where("goal_id = ?", goalID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计目标完成次数失败: %w", err)
	}
	return count, nil
}

// DeleteForGoal 在给定事务中删除某目标的全部完成记录（目标删除的级联）。
// 这里使用不可恢复的物理删除，台账行不参与软删除。
func DeleteForGoal(tx *gorm.DB, goalID string) error {
	if err := tx.Unscoped().Where("goal_id = ?", goalID).Delete(&Completion{}).Error; err != nil {
		return fmt.Errorf("级联删除完成记录失败: %w", err)
	}
	return nil
}

// CountForUser 统计用户的总完成次数（徽章计数器）。
// 接收db句柄，以便编排事务内的评估能看到尚未提交的新记录。
func CountForUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&Completion{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计用户完成次数失败: %w", err)
	}
	return count, nil
}

// DistinctGoalsForUser 统计用户完成过的不同目标数（徽章计数器）。
func DistinctGoalsForUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&Completion{}).Where("user_id = ?", userID).
		Distinct("goal_id").Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计用户完成目标数失败: %w", err)
	}
	return count, nil
}

// DistinctGoalsInPeriod 统计用户在指定周期键下完成的不同目标数（进度条用）。
func DistinctGoalsInPeriod(userID string, goalIDs []string, periodKey string) (int64, error) {
	if len(goalIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := database.DB.Model(&Completion{}).
		Where("user_id = ? AND period_key = ? AND goal_id IN ?", userID, periodKey, goalIDs).
		Distinct("goal_id").Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计周期内完成目标数失败: %w", err)
	}
	return count, nil
}

// HasCompletionInPeriod 判断单个目标在指定周期键下是否已有完成记录。
func HasCompletionInPeriod(goalID, userID, periodKey string) (bool, error) {
	var count int64
	err := database.DB.Model(&Completion{}).
		Where("goal_id = ? AND user_id = ? AND period_key = ?", goalID, userID, periodKey).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("查询完成台账失败: %w", err)
	}
	return count > 0, nil
}
