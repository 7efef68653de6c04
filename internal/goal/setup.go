package goal

import (
	"fmt"

	"github.com/SlpAus/questify-backend/internal/platform/database"
)

// PrimeDB 是goal模块的初始化入口，负责迁移表结构。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Goal{}); err != nil {
		return fmt.Errorf("无法迁移goals表: %w", err)
	}
	fmt.Println("Goal数据库表迁移成功。")
	return nil
}
