package completion

import (
	"fmt"

	"github.com/SlpAus/questify-backend/internal/platform/database"
)

// PrimeDB 是completion模块的初始化入口，负责迁移表结构。
// 迁移会建立 (goal_id, user_id, period_key) 的唯一索引。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Completion{}); err != nil {
		return fmt.Errorf("无法迁移completion表: %w", err)
	}
	fmt.Println("Completion数据库表迁移成功。")
	return nil
}
