// Package scheduler 托管两个对齐日历边界的内置定时任务：
// 每日零点的连击清扫和每月一日零点的排行榜结算。
// 两个任务也都暴露了admin接口，可关闭内置调度改由外部系统触发。
package scheduler

import (
	"fmt"
	"time"

	"github.com/SlpAus/questify-backend/internal/leaderboard"
	"github.com/SlpAus/questify-backend/internal/streak"
	"github.com/SlpAus/questify-backend/pkg/calendar"
	"github.com/SlpAus/questify-backend/pkg/lifecycle"
)

// StartDailyDecay 在每日零点执行一次连击清扫，直到收到停机信号。
// 应在独立的Goroutine中运行。
func StartDailyDecay(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("每日连击清扫任务已启动。")

	for {
		if err := handle.SleepUntil(calendar.NextMidnight(time.Now())); err != nil {
			fmt.Println("每日连击清扫任务已停止。")
			return
		}
		if _, err := streak.RunDailyDecay(calendar.Today()); err != nil {
			fmt.Printf("错误: 每日连击清扫失败: %v\n", err)
		}
	}
}

// StartMonthlyRollover 在每月一日零点执行一次排行榜结算，直到收到停机信号。
// 结算本身是幂等的，进程在月初崩溃重启后由下一次触发补齐。
// 应在独立的Goroutine中运行。
func StartMonthlyRollover(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("月度结算任务已启动。")

	for {
		if err := handle.SleepUntil(calendar.NextMonthStart(time.Now())); err != nil {
			fmt.Println("月度结算任务已停止。")
			return
		}
		if _, err := leaderboard.RunMonthlyRollover(time.Now()); err != nil {
			fmt.Printf("错误: 月度结算失败: %v\n", err)
		}
	}
}
