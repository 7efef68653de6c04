package startup

import (
	"fmt"

	"github.com/SlpAus/questify-backend/internal/badge"
	"github.com/SlpAus/questify-backend/internal/completion"
	"github.com/SlpAus/questify-backend/internal/goal"
	"github.com/SlpAus/questify-backend/internal/leaderboard"
	"github.com/SlpAus/questify-backend/internal/social"
	"github.com/SlpAus/questify-backend/internal/user"
)

// InitializeApplication 是应用首次启动时执行的总入口：
// 按依赖顺序迁移各模块的表结构，最后预热排行榜缓存。
func InitializeApplication() error {
	fmt.Println("开始应用初始化...")

	if err := user.PrimeDB(); err != nil {
		return err
	}
	if err := completion.PrimeDB(); err != nil {
		return err
	}
	if err := goal.PrimeDB(); err != nil {
		return err
	}
	if err := social.PrimeDB(); err != nil {
		return err
	}
	if err := badge.PrimeDB(); err != nil {
		return err
	}
	// leaderboard放在最后，它的PrimeDB会顺带预热缓存
	if err := leaderboard.PrimeDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}
