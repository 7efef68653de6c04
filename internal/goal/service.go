package goal

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/questify-backend/internal/badge"
	"github.com/SlpAus/questify-backend/internal/completion"
	"github.com/SlpAus/questify-backend/internal/leaderboard"
	"github.com/SlpAus/questify-backend/internal/motivation"
	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/SlpAus/questify-backend/internal/social"
	"github.com/SlpAus/questify-backend/internal/streak"
	"github.com/SlpAus/questify-backend/pkg/calendar"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrGoalNotFound 表示目标不存在或不属于当前用户。
// 两种情况对外不作区分，避免暴露他人目标的存在性。
var ErrGoalNotFound = errors.New("目标不存在")

// ErrInvalidFrequency 表示频率取值不是daily或weekly。
var ErrInvalidFrequency = errors.New("无效的目标频率")

// Create 为用户创建一个新目标。
func Create(userID, title, description, category string, freq completion.Frequency, deadline *time.Time) (*Goal, error) {
	if !freq.IsValid() {
		return nil, ErrInvalidFrequency
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成目标ID: %w", err)
	}

	g := Goal{
		UUID:        id.String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Category:    category,
		Frequency:   freq,
		Deadline:    deadline,
	}
	if err := database.DB.Create(&g).Error; err != nil {
		return nil, fmt.Errorf("创建目标失败: %w", err)
	}
	return &g, nil
}

// getOwned 读取用户自己的目标，他人的目标与不存在的目标统一返回ErrGoalNotFound。
func getOwned(db *gorm.DB, userID, goalID string) (*Goal, error) {
	var g Goal
	err := db.Where("uuid = ? AND user_id = ?", goalID, userID).First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("读取目标失败: %w", err)
	}
	return &g, nil
}

// GoalView 是目标列表中单个目标的视图，附带当前周期是否已完成。
type GoalView struct {
	Goal
	CompletedThisPeriod bool `json:"completedThisPeriod"`
}

// ListForUser 返回用户的全部目标，新建的在前。
func ListForUser(userID string, today time.Time) ([]GoalView, error) {
	var goals []Goal
	err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("查询目标列表失败: %w", err)
	}

	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		done, err := completion.HasCompletedPeriod(g.UUID, userID, g.Frequency, today)
		if err != nil {
			return nil, err
		}
		views = append(views, GoalView{Goal: g, CompletedThisPeriod: done})
	}
	return views, nil
}

// BadgeUnlock 是一次完成动作中新解锁的徽章及其祝贺文案。
type BadgeUnlock struct {
	BadgeType badge.Type `json:"badgeType"`
	Message   string     `json:"message"`
}

// CompleteResult 是一次任务完成的全部产出。
type CompleteResult struct {
	PointsEarned   int           `json:"pointsEarned"`
	CurrentStreak  int           `json:"currentStreak"`
	Message        string        `json:"message"`
	BadgesUnlocked []BadgeUnlock `json:"badgesUnlocked"`
}

// CompleteTask 是打卡动作的编排入口，在单个数据库事务内依次：
// 写台账（周期幂等在此裁决）→ 积分入账 → 连击推进 → 徽章评估。
// 任何一步失败整体回滚，聚合之间不会出现半更新状态。
// 缓存同步与AI文案生成发生在事务提交之后，不参与回滚。
func CompleteTask(userID, goalID string, today time.Time) (*CompleteResult, error) {
	g, err := getOwned(database.DB, userID, goalID)
	if err != nil {
		return nil, err
	}

	points := leaderboard.Tariff(g.Frequency)
	result := CompleteResult{PointsEarned: points}
	var granted []badge.Type

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := completion.Record(tx, g.UUID, userID, g.Frequency, today, points); err != nil {
			return err
		}
		if err := leaderboard.ApplyCompletion(tx, userID, points); err != nil {
			return err
		}
		currentStreak, err := streak.UpdateOnCompletion(tx, userID, today)
		if err != nil {
			return err
		}
		result.CurrentStreak = currentStreak

		// 在同一事务内评估，让计数器看到刚写入的台账行
		granted, err = badge.EvaluateIn(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	leaderboard.SyncCacheAfterApply(userID, points)

	result.Message = motivation.Generate(motivation.KindCompletion, motivation.Context{
		"goal_type":  g.Category,
		"goal_title": g.Title,
	})
	for _, t := range granted {
		result.BadgesUnlocked = append(result.BadgesUnlocked, BadgeUnlock{
			BadgeType: t,
			Message: motivation.Generate(motivation.KindBadgeUnlock, motivation.Context{
				"badge_name": string(t),
			}),
		})
	}
	return &result, nil
}

// DeleteGoal 删除用户的目标并退回它赚取过的全部积分。
// 退款 → 级联删台账 → 级联删催促 → 删目标，同样在单个事务内完成。
// 返回退回的积分数。
func DeleteGoal(userID, goalID string) (int, error) {
	refund := 0
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		g, err := getOwned(tx, userID, goalID)
		if err != nil {
			return err
		}

		count, err := completion.CountForGoal(tx, g.UUID)
		if err != nil {
			return err
		}
		refund = int(count) * leaderboard.Tariff(g.Frequency)

		if err := leaderboard.RefundPoints(tx, userID, refund); err != nil {
			return err
		}
		if err := completion.DeleteForGoal(tx, g.UUID); err != nil {
			return err
		}
		if err := social.DeleteNudgesForGoal(tx, g.UUID); err != nil {
			return err
		}
		if err := tx.Delete(g).Error; err != nil {
			return fmt.Errorf("删除目标失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if refund > 0 {
		leaderboard.SyncCacheAfterRefund(userID)
	}
	return refund, nil
}

// ProgressReport 是仪表盘进度条数据：每日与每周两个档位各一条。
type ProgressReport struct {
	Daily  FrequencyProgress `json:"daily"`
	Weekly FrequencyProgress `json:"weekly"`
}

// Progress 统计用户当前周期的完成进度。
// completed按目标去重：一个目标在周期内只计一次。
func Progress(userID string, today time.Time) (*ProgressReport, error) {
	var goals []Goal
	err := database.DB.Select("uuid, frequency").Where("user_id = ?", userID).Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("查询目标列表失败: %w", err)
	}

	var dailyIDs, weeklyIDs []string
	for _, g := range goals {
		if g.Frequency == completion.FrequencyWeekly {
			weeklyIDs = append(weeklyIDs, g.UUID)
		} else {
			dailyIDs = append(dailyIDs, g.UUID)
		}
	}

	dailyDone, err := completion.DistinctGoalsInPeriod(userID, dailyIDs, calendar.DayKey(today))
	if err != nil {
		return nil, err
	}
	weeklyDone, err := completion.DistinctGoalsInPeriod(userID, weeklyIDs, calendar.WeekKey(today))
	if err != nil {
		return nil, err
	}

	return &ProgressReport{
		Daily:  buildProgress(dailyDone, len(dailyIDs)),
		Weekly: buildProgress(weeklyDone, len(weeklyIDs)),
	}, nil
}

// FailureAlert 是一条进度落后提醒。
type FailureAlert struct {
	GoalID      string `json:"goalId"`
	GoalTitle   string `json:"goalTitle"`
	DaysBehind  int    `json:"daysBehind"`
	ExpectedPct int    `json:"expectedPct"`
	ActualPct   int    `json:"actualPct"`
	Message     string `json:"message"`
}

// FailureAlerts 对用户所有带截止日期、且尚未到期的目标做节奏评估，
// 为落后超过阈值的目标生成提醒。已过期的目标静默跳过。
func FailureAlerts(userID string, today time.Time) ([]FailureAlert, error) {
	var goals []Goal
	err := database.DB.
		Where("user_id = ? AND deadline IS NOT NULL AND deadline >= ?", userID, calendar.Truncate(today)).
		Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("查询带截止日期的目标失败: %w", err)
	}

	alerts := make([]FailureAlert, 0)
	for _, g := range goals {
		count, err := completion.CountForGoal(database.DB, g.UUID)
		if err != nil {
			return nil, err
		}

		p := EvaluatePacing(g.CreatedAt, *g.Deadline, today, g.Frequency, count)
		if !p.Behind {
			continue
		}
		alerts = append(alerts, FailureAlert{
			GoalID:      g.UUID,
			GoalTitle:   g.Title,
			DaysBehind:  p.DaysBehind,
			ExpectedPct: p.ExpectedPct,
			ActualPct:   p.ActualPct,
			Message: motivation.Generate(motivation.KindFailureAlert, motivation.Context{
				"goal_type":  g.Category,
				"goal_title": g.Title,
			}),
		})
	}
	return alerts, nil
}

// CountForUser 返回用户的目标总数（资料页统计用）。
func CountForUser(userID string) (int64, error) {
	var count int64
	err := database.DB.Model(&Goal{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计目标数失败: %w", err)
	}
	return count, nil
}
