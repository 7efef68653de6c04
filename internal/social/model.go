package social

import "gorm.io/gorm"

// Friendship 表示一条有向的好友关系。
// 添加好友时双向写入两行，因此按user_id单边统计即可得到好友数。
type Friendship struct {
	gorm.Model

	UserID   string `gorm:"type:varchar(36);index;uniqueIndex:idx_friend_pair"`
	FriendID string `gorm:"type:varchar(36);uniqueIndex:idx_friend_pair"`
}

// Nudge 表示一次好友催促：提醒对方去完成某个目标。
// 发送数是"Helping Hand"徽章的计数器。目标删除时级联删除。
type Nudge struct {
	gorm.Model

	FromUserID string `gorm:"type:varchar(36);index"`
	ToUserID   string `gorm:"type:varchar(36);index"`
	GoalID     string `gorm:"type:varchar(36);index"`

	// Message 是发送时生成的鼓励文案（AI或兜底）。
	Message string
}
