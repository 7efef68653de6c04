// Package health 负责Redis缓存的持续健康检查。
// 通过run_id检测Redis重启：重启会清空排行榜ZSet，
// 单纯的ping检查发现不了这种"连接正常但数据没了"的状态。
package health

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/SlpAus/questify-backend/internal/leaderboard"
	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/SlpAus/questify-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

var runIDPattern = regexp.MustCompile(`run_id:([a-f0-9]+)`)

var (
	mu             sync.Mutex
	lastKnownRunID string
)

// getRedisRunID 从Redis服务器信息中提取run_id。
func getRedisRunID() (string, error) {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()
	info, err := database.RDB.Info(ctx, "server").Result()
	if err != nil {
		return "", err
	}
	matches := runIDPattern.FindStringSubmatch(info)
	if len(matches) < 2 {
		return "", fmt.Errorf("无法在Redis INFO中找到run_id")
	}
	return matches[1], nil
}

// triggerAtomicRebuild 执行一次自校验的缓存重建：
// 只有重建期间Redis没有再次重启，重建结果才算数。
func triggerAtomicRebuild(idBeforeRebuild string) bool {
	fmt.Println("健康检查: 检测到Redis重启，正在重建排行榜缓存...")
	if err := leaderboard.RebuildCache(); err != nil {
		fmt.Printf("健康检查错误: 缓存重建失败: %v\n", err)
		return false
	}

	idAfterRebuild, err := getRedisRunID()
	if err != nil {
		fmt.Println("健康检查错误: 缓存重建后无法连接到Redis，重建无效。")
		return false
	}
	if idBeforeRebuild != idAfterRebuild {
		fmt.Printf("健康检查错误: 重建期间Redis再次重启 (run_id: %s -> %s)，重建无效。\n", idBeforeRebuild, idAfterRebuild)
		return false
	}

	fmt.Println("健康检查: 排行榜缓存重建成功。")
	return true
}

// PerformCheck 执行一次完整的健康检查和可能的修复操作。
func PerformCheck() {
	currentRunID, err := getRedisRunID()
	if err != nil {
		database.UpdateStatus(false)
		return
	}

	mu.Lock()
	known := lastKnownRunID
	mu.Unlock()

	if currentRunID != known {
		// run_id变化（包括首次检查）意味着缓存内容不可信，先重建再放行
		if !triggerAtomicRebuild(currentRunID) {
			database.UpdateStatus(false)
			return
		}
		mu.Lock()
		lastKnownRunID = currentRunID
		mu.Unlock()
	}
	database.UpdateStatus(true)
}

// StartRedisHealthCheck 周期性地执行健康检查，直到收到停机信号。
// 应在独立的Goroutine中运行。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("Redis健康检查器已启动。")

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			fmt.Println("Redis健康检查器已停止。")
			return
		}
		PerformCheck()
	}
}
