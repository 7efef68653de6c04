package user

import (
	"errors"
	"fmt"

	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrUserNotFound 表示引用的用户不存在。
var ErrUserNotFound = errors.New("用户不存在")

// ErrUsernameTaken 表示用户名已被占用。
var ErrUsernameTaken = errors.New("用户名已被占用")

// IsValidUUID 校验字符串是否是合法的UUID。
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Register 创建一个新用户，所有游戏化计数器从零开始。
func Register(username string) (*User, error) {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成UUID v7: %w", err)
	}

	newUser := User{
		UUID:     newUUID.String(),
		Username: username,
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("无法创建新用户: %w", err)
	}
	return &newUser, nil
}

// GetByID 按UUID读取用户行。
func GetByID(userID string) (*User, error) {
	return GetIn(database.DB, userID)
}

// GetIn 与GetByID相同，但使用给定的db句柄（事务内读取时使用）。
func GetIn(db *gorm.DB, userID string) (*User, error) {
	var u User
	if err := db.Where("uuid = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &u, nil
}

// GetByUsername 按用户名查找用户（好友添加等场景）。
func GetByUsername(username string) (*User, error) {
	var u User
	if err := database.DB.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &u, nil
}

// Exists 判断用户是否存在。
func Exists(userID string) (bool, error) {
	var count int64
	err := database.DB.Model(&User{}).Where("uuid = ?", userID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("查询用户失败: %w", err)
	}
	return count > 0, nil
}

// AddPoints 在给定事务中对用户终身总积分做加法更新。
// delta可以为负（目标删除退款）；终身总积分刻意不做零下限截断，
// 与月度/历史积分的截断规则形成的不对称是有意保留的设计。
func AddPoints(tx *gorm.DB, userID string, delta int) error {
	result := tx.Model(&User{}).Where("uuid = ?", userID).
		UpdateColumn("total_points", gorm.Expr("total_points + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("更新用户总积分失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
