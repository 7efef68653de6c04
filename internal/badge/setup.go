package badge

import (
	"fmt"

	"github.com/SlpAus/questify-backend/internal/platform/database"
)

// PrimeDB 是badge模块的初始化入口，负责迁移表结构。
// 迁移会建立 (user_id, badge_type) 的唯一索引。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Badge{}); err != nil {
		return fmt.Errorf("无法迁移badge表: %w", err)
	}
	fmt.Println("Badge数据库表迁移成功。")
	return nil
}
