package leaderboard

import (
	"fmt"

	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

// RankingKey 是月度排行榜的Redis Sorted Set键。
// Score: 用户当月积分; Member: 用户UUID。
// 它只是SQL事实来源的可重建缓存：启动、结算和Redis恢复时整体重建。
const RankingKey = "leaderboard:monthly"

// cacheIncrement 在缓存可用时把一次积分变动同步进排行榜ZSet。
// 缓存失败只降级不报错——下一次重建会纠正一切。
func cacheIncrement(userID string, delta int) {
	if !database.IsRedisHealthy() {
		return
	}
	if err := database.RDB.ZIncrBy(database.Ctx, RankingKey, float64(delta), userID).Err(); err != nil {
		fmt.Printf("警告: 排行榜缓存增量更新失败(user=%s): %v\n", userID, err)
	}
}

// cacheSet 在缓存可用时把某用户的当月积分写为确定值（退款截断后使用）。
func cacheSet(userID string, points int) {
	if !database.IsRedisHealthy() {
		return
	}
	err := database.RDB.ZAdd(database.Ctx, RankingKey, redis.Z{Score: float64(points), Member: userID}).Err()
	if err != nil {
		fmt.Printf("警告: 排行榜缓存写入失败(user=%s): %v\n", userID, err)
	}
}

// RebuildCache 用SQL中的全部参赛行整体重建排行榜ZSet。
// 启动预热、月度结算后和Redis恢复后调用。
func RebuildCache() error {
	var entries []MonthlyEntry
	if err := database.DB.Find(&entries).Error; err != nil {
		return fmt.Errorf("读取月度排行榜失败: %w", err)
	}

	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, RankingKey)
	if len(entries) > 0 {
		members := make([]redis.Z, 0, len(entries))
		for _, e := range entries {
			members = append(members, redis.Z{Score: float64(e.Points), Member: e.UserID})
		}
		pipe.ZAdd(database.Ctx, RankingKey, members...)
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("重建排行榜缓存失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个用户的排行榜缓存。\n", len(entries))
	return nil
}
