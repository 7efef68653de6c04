package database

import (
	"fmt"
	"sync"
)

// statusManager 线程安全地管理Redis缓存的健康状态。
// 所有缓存旁路(cache-aside)的读写路径在动手前都应检查该状态。
type statusManager struct {
	mu             sync.RWMutex
	isRedisHealthy bool
}

var globalStatus = &statusManager{}

// IsRedisHealthy 返回当前Redis缓存是否可用。
func IsRedisHealthy() bool {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return globalStatus.isRedisHealthy
}

// UpdateStatus 线程安全地更新健康状态，只在状态变化时打印日志。
func UpdateStatus(isHealthy bool) {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()

	if globalStatus.isRedisHealthy == isHealthy {
		return
	}
	globalStatus.isRedisHealthy = isHealthy
	if isHealthy {
		fmt.Println("健康检查: Redis缓存状态已更新为 [可用]")
	} else {
		fmt.Println("健康检查警告: Redis缓存状态已更新为 [不可用]")
	}
}
