package goal

import (
	"time"

	"github.com/SlpAus/questify-backend/internal/completion"
	"gorm.io/gorm"
)

// Goal 是用户创建的一个打卡目标。
// 创建后除删除外不可变；删除时级联清理名下的完成记录与催促记录。
type Goal struct {
	UUID   string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID string `gorm:"type:varchar(36);index;not null" json:"userId"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`

	// Frequency 决定周期粒度与积分价目（daily=10分/天, weekly=50分/周）。
	Frequency completion.Frequency `gorm:"type:varchar(10);not null" json:"frequency"`

	// Deadline 可选。设置后目标参与节奏评估；过期目标静默退出评估，
	// 系统不建模"错过截止日期"这种状态。
	Deadline *time.Time `json:"deadline,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
