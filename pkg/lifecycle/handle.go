package lifecycle

import (
	"context"
	"time"
)

// Handle 是分发给每个后台任务的生命周期句柄。
// 任务通过它监听停机信号，并在退出前通过Close向管理器汇报。
type Handle struct {
	ctx context.Context
	// Close 通知Manager该任务已完成关闭。
	// 应当在任务Goroutine退出前通过defer调用。
	Close func()
}

// Ctx 返回句柄内部的context，供需要传递context的下游调用使用。
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done 返回一个channel，管理器广播停机信号时该channel会被关闭。
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err 在Done()关闭后返回取消原因。
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Sleep 休眠指定时长；若期间收到停机信号则提前返回错误。
// 所有后台循环中的休眠都应使用该方法，避免阻塞停机。
func (h *Handle) Sleep(duration time.Duration) error {
	timer := time.NewTimer(duration)
	select {
	case <-h.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return h.Err()
	case <-timer.C:
		return nil
	}
}

// SleepUntil 休眠到指定时间点，语义与Sleep一致。
// 定时任务用它对齐到零点、月初等日历边界。
func (h *Handle) SleepUntil(t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		return nil
	}
	return h.Sleep(d)
}
