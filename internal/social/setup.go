package social

import (
	"fmt"

	"github.com/SlpAus/questify-backend/internal/platform/database"
)

// PrimeDB 是social模块的初始化入口，负责迁移表结构。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Friendship{}, &Nudge{}); err != nil {
		return fmt.Errorf("无法迁移social相关表: %w", err)
	}
	fmt.Println("Social数据库表迁移成功。")
	return nil
}
