package leaderboard

import (
	"fmt"

	"github.com/SlpAus/questify-backend/internal/platform/database"
)

// PrimeDB 是leaderboard模块的初始化入口：迁移表结构并预热排行榜缓存。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&MonthlyEntry{}, &HistoryEntry{}); err != nil {
		return fmt.Errorf("无法迁移leaderboard相关表: %w", err)
	}
	fmt.Println("Leaderboard数据库表迁移成功。")

	if database.IsRedisHealthy() {
		if err := RebuildCache(); err != nil {
			// 缓存预热失败只降级，不阻止启动
			fmt.Printf("警告: 排行榜缓存预热失败: %v\n", err)
		}
	}
	return nil
}
