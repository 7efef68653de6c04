package badge

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/questify-backend/internal/completion"
	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/SlpAus/questify-backend/internal/social"
	"github.com/SlpAus/questify-backend/internal/user"
	"gorm.io/gorm"
)

// Grant 在给定事务中授予徽章（集合插入）。
// 返回是否真的新授予：已持有时返回false且不报错。
func Grant(tx *gorm.DB, userID string, badgeType Type) (bool, error) {
	b := Badge{
		UserID:     userID,
		BadgeType:  badgeType,
		UnlockedAt: time.Now(),
	}
	if err := tx.Create(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, fmt.Errorf("授予徽章失败: %w", err)
	}
	return true, nil
}

// gatherCounters 在给定db句柄上为评估取齐一份不可变的计数器快照。
func gatherCounters(db *gorm.DB, userID string) (Counters, error) {
	u, err := user.GetIn(db, userID)
	if err != nil {
		return Counters{}, err
	}

	tasks, err := completion.CountForUser(db, userID)
	if err != nil {
		return Counters{}, err
	}
	goals, err := completion.DistinctGoalsForUser(db, userID)
	if err != nil {
		return Counters{}, err
	}
	friends, err := social.FriendCount(db, userID)
	if err != nil {
		return Counters{}, err
	}
	nudges, err := social.NudgesSent(db, userID)
	if err != nil {
		return Counters{}, err
	}

	return Counters{
		CompletedTasks: tasks,
		DistinctGoals:  goals,
		FriendCount:    friends,
		NudgesSent:     nudges,
		CurrentStreak:  u.CurrentStreak,
		LongestStreak:  u.LongestStreak,
	}, nil
}

// Evaluate 对用户重新评估全部徽章规则，返回本次新授予的徽章类型。
// 重复调用是幂等的：已持有的徽章被跳过，计数器不变时第二次调用不授予任何徽章。
func Evaluate(userID string) ([]Type, error) {
	return EvaluateIn(database.DB, userID)
}

// EvaluateIn 与Evaluate相同，但授予动作使用给定的事务句柄。
// 任务完成的编排流程在自己的事务内评估徽章时使用。
func EvaluateIn(tx *gorm.DB, userID string) ([]Type, error) {
	counters, err := gatherCounters(tx, userID)
	if err != nil {
		return nil, err
	}

	var granted []Type
	for _, t := range satisfiedTypes(counters) {
		isNew, err := Grant(tx, userID, t)
		if err != nil {
			return granted, err
		}
		if isNew {
			granted = append(granted, t)
		}
	}
	return granted, nil
}

// ListForUser 返回用户已解锁的全部徽章，按解锁时间倒序。
func ListForUser(userID string) ([]Badge, error) {
	var badges []Badge
	err := database.DB.Where("user_id = ?", userID).
		Order("unlocked_at DESC").Find(&badges).Error
	if err != nil {
		return nil, fmt.Errorf("查询徽章失败: %w", err)
	}
	return badges, nil
}

// CountForUser 返回用户持有的徽章数（资料页统计用）。
func CountForUser(userID string) (int64, error) {
	var count int64
	err := database.DB.Model(&Badge{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计徽章数失败: %w", err)
	}
	return count, nil
}
