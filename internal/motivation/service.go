package motivation

import (
	"fmt"
	"time"

	"github.com/SlpAus/questify-backend/internal/platform/config"
	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/SlpAus/questify-backend/pkg/calendar"
)

// quoteCacheKeyPrefix 是每日格言在Redis中的键前缀，按参考日期区分。
const quoteCacheKeyPrefix = "motivation:quote:"

// Generate 生成指定类型的文案。外部AI服务失败、超时或未配置时
// 静默降级为静态兜底文案，绝不向调用方传播错误——
// 台账操作不允许被文案依赖拖垮。
func Generate(kind Kind, ctx Context) string {
	cfg := config.Cfg.Gemini
	text, err := callGemini(cfg, buildPrompt(kind, ctx))
	if err != nil {
		if err != errNoAPIKey {
			fmt.Printf("警告: AI文案生成失败(kind=%s)，使用兜底文案: %v\n", kind, err)
		}
		return Fallback(kind)
	}
	return text
}

// DailyQuote 返回当天的仪表盘格言。
// 同一天内只生成一次，结果缓存在Redis中（36小时后自然过期）；
// 缓存不可用时退化为每次调用直接生成。
func DailyQuote() string {
	cacheKey := quoteCacheKeyPrefix + calendar.DayKey(calendar.Today())

	if database.IsRedisHealthy() {
		cached, err := database.RDB.Get(database.Ctx, cacheKey).Result()
		if err == nil && cached != "" {
			return cached
		}
	}

	quote := Generate(KindDashboardQuote, nil)

	if database.IsRedisHealthy() {
		if err := database.RDB.Set(database.Ctx, cacheKey, quote, 36*time.Hour).Err(); err != nil {
			fmt.Printf("警告: 写入每日格言缓存失败: %v\n", err)
		}
	}
	return quote
}
