package database

import (
	"context"
	"fmt"

	"github.com/SlpAus/questify-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// RDB 是全局的Redis客户端实例。
// Redis在本系统中只承担可重建的缓存（排行榜ZSet、每日文案），不是事实来源。
var RDB *redis.Client

// Ctx 是用于Redis操作的全局上下文。
var Ctx = context.Background()

// InitRedis 初始化与Redis的连接。
func InitRedis(cfg config.RedisConfig) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	_, err := RDB.Ping(Ctx).Result()
	if err != nil {
		// 缓存不可用不阻止启动，标记为不健康后由健康检查器接管
		fmt.Printf("警告: 无法连接到Redis(%s)，排行榜缓存降级为SQL直查: %v\n", cfg.Address, err)
		UpdateStatus(false)
		return
	}

	UpdateStatus(true)
	fmt.Println("Redis 连接成功！")
}
