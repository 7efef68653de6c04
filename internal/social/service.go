package social

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/questify-backend/internal/completion"
	"github.com/SlpAus/questify-backend/internal/motivation"
	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/SlpAus/questify-backend/internal/user"
	"github.com/SlpAus/questify-backend/pkg/calendar"
	"gorm.io/gorm"
)

// ErrAlreadyFriends 表示好友关系已存在。
var ErrAlreadyFriends = errors.New("已经是好友了")

// ErrSelfFriendship 表示试图添加自己为好友。
var ErrSelfFriendship = errors.New("不能添加自己为好友")

// ErrNudgeTargetInvalid 表示催促的目标不存在或不属于被催促的好友。
var ErrNudgeTargetInvalid = errors.New("被催促的目标不存在")

// AddFriend 按用户名添加好友，双向写入两行关系。
func AddFriend(userID, friendUsername string) (*user.User, error) {
	friend, err := user.GetByUsername(friendUsername)
	if err != nil {
		return nil, err
	}
	if friend.UUID == userID {
		return nil, ErrSelfFriendship
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&Friendship{UserID: userID, FriendID: friend.UUID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyFriends
			}
			return fmt.Errorf("写入好友关系失败: %w", err)
		}
		if err := tx.Create(&Friendship{UserID: friend.UUID, FriendID: userID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyFriends
			}
			return fmt.Errorf("写入好友关系失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return friend, nil
}

// FriendSummary 是好友列表中单个好友的查询结果。
type FriendSummary struct {
	UUID          string `json:"id"`
	Username      string `json:"username"`
	TotalPoints   int    `json:"totalPoints"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
}

// ListFriends 返回用户的好友及其游戏化概况。
func ListFriends(userID string) ([]FriendSummary, error) {
	var friends []FriendSummary
	err := database.DB.Model(&Friendship{}).
		Select("users.uuid, users.username, users.total_points, users.current_streak, users.longest_streak").
		Joins("JOIN users ON users.uuid = friendships.friend_id").
		Where("friendships.user_id = ?", userID).
		Order("users.username").
		Scan(&friends).Error
	if err != nil {
		return nil, fmt.Errorf("查询好友列表失败: %w", err)
	}
	return friends, nil
}

// FeedItem 是好友动态流中的一条完成记录。
type FeedItem struct {
	FriendID       string    `json:"friendId"`
	FriendUsername string    `json:"friendUsername"`
	GoalID         string    `json:"goalId"`
	GoalTitle      string    `json:"goalTitle"`
	Category       string    `json:"category"`
	Frequency      string    `json:"frequency"`
	PointsEarned   int       `json:"pointsEarned"`
	CompletedDate  time.Time `json:"completedDate"`
}

// NudgableGoal 是好友本周期尚未完成、可以被催促的目标。
type NudgableGoal struct {
	GoalID         string `json:"goalId"`
	GoalTitle      string `json:"goalTitle"`
	Category       string `json:"category"`
	Frequency      string `json:"frequency"`
	FriendID       string `json:"friendId"`
	FriendUsername string `json:"friendUsername"`
}

// Feed 返回好友最近的完成动态，以及当前周期内还没完成、可以催促的好友目标。
// 跨聚合的只读视图，这里直接join目标表，不反向依赖goal包。
func Feed(userID string, today time.Time) ([]FeedItem, []NudgableGoal, error) {
	var items []FeedItem
	err := database.DB.Model(&completion.Completion{}).
		Select(`users.uuid AS friend_id, users.username AS friend_username,
			goals.uuid AS goal_id, goals.title AS goal_title, goals.category, goals.frequency,
			completions.points_earned, completions.completed_date`).
		Joins("JOIN users ON users.uuid = completions.user_id").
		Joins("JOIN goals ON goals.uuid = completions.goal_id").
		Where("completions.user_id IN (?)",
			database.DB.Model(&Friendship{}).Select("friend_id").Where("user_id = ?", userID)).
		Order("completions.created_at DESC").
		Limit(20).
		Scan(&items).Error
	if err != nil {
		return nil, nil, fmt.Errorf("查询好友动态失败: %w", err)
	}

	dayKey := calendar.DayKey(today)
	weekKey := calendar.WeekKey(today)

	var nudgable []NudgableGoal
	err = database.DB.Table("goals").
		Select(`goals.uuid AS goal_id, goals.title AS goal_title, goals.category, goals.frequency,
			users.uuid AS friend_id, users.username AS friend_username`).
		Joins("JOIN users ON users.uuid = goals.user_id").
		Where("goals.deleted_at IS NULL").
		Where("goals.user_id IN (?)",
			database.DB.Model(&Friendship{}).Select("friend_id").Where("user_id = ?", userID)).
		Where(`NOT EXISTS (
			SELECT 1 FROM completions
			WHERE completions.goal_id = goals.uuid
			  AND completions.user_id = goals.user_id
			  AND completions.period_key = CASE goals.frequency WHEN 'weekly' THEN ? ELSE ? END
			  AND completions.deleted_at IS NULL)`, weekKey, dayKey).
		Order("goals.created_at DESC").
		Limit(10).
		Scan(&nudgable).Error
	if err != nil {
		return nil, nil, fmt.Errorf("查询可催促目标失败: %w", err)
	}

	return items, nudgable, nil
}

// SendNudge 向好友的某个目标发送一次催促，文案由AI生成（失败走兜底）。
func SendNudge(fromUserID, toUserID, goalID string) (*Nudge, error) {
	exists, err := user.Exists(toUserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	// 目标必须存在且属于被催促的好友
	var goalRow struct {
		Title    string
		Category string
	}
	err = database.DB.Table("goals").Select("title, category").
		Where("uuid = ? AND user_id = ? AND deleted_at IS NULL", goalID, toUserID).
		Take(&goalRow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNudgeTargetInvalid
		}
		return nil, fmt.Errorf("查询催促目标失败: %w", err)
	}

	message := motivation.Generate(motivation.KindNudge, motivation.Context{
		"goal_type":  goalRow.Category,
		"goal_title": goalRow.Title,
	})

	nudge := Nudge{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		GoalID:     goalID,
		Message:    message,
	}
	if err := database.DB.Create(&nudge).Error; err != nil {
		return nil, fmt.Errorf("写入催促记录失败: %w", err)
	}
	return &nudge, nil
}

// DeleteNudgesForGoal 在给定事务中删除某目标的全部催促记录（目标删除的级联）。
func DeleteNudgesForGoal(tx *gorm.DB, goalID string) error {
	if err := tx.Unscoped().Where("goal_id = ?", goalID).Delete(&Nudge{}).Error; err != nil {
		return fmt.Errorf("级联删除催促记录失败: %w", err)
	}
	return nil
}

// FriendCount 返回用户的好友数（徽章计数器）。
func FriendCount(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&Friendship{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计好友数失败: %w", err)
	}
	return count, nil
}

// NudgesSent 返回用户发送过的催促数（徽章计数器）。
func NudgesSent(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&Nudge{}).Where("from_user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计催促数失败: %w", err)
	}
	return count, nil
}
