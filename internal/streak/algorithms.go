package streak

import (
	"time"

	"github.com/SlpAus/questify-backend/pkg/calendar"
)

// Snapshot 是连击状态机的输入/输出：用户连击相关字段的一个不可变快照。
type Snapshot struct {
	CurrentStreak    int
	LongestStreak    int
	LastActivityDate *time.Time
}

// Advance 是连击追踪器的核心状态机。
// 它根据最近活动日与今天的间隔推进、保持或重置连击：
//   - 无历史活动: current=1, longest=max(longest,1)
//   - 昨天有活动（延续）: current+1, longest=max(longest,current)
//   - 今天已计入: 原样返回（同日重复调用的幂等性由此分支保证）
//   - 间隔≥2天（断签）: current=1, longest不变
//
// changed为false表示今天已经计入过，调用方无需写库。
func Advance(s Snapshot, today time.Time) (next Snapshot, changed bool) {
	today = calendar.Truncate(today)
	next = s

	if s.LastActivityDate == nil {
		next.CurrentStreak = 1
		if next.LongestStreak < 1 {
			next.LongestStreak = 1
		}
		next.LastActivityDate = &today
		return next, true
	}

	last := calendar.Truncate(*s.LastActivityDate)
	switch {
	case last.Equal(today):
		return s, false
	case last.Equal(calendar.Yesterday(today)):
		next.CurrentStreak = s.CurrentStreak + 1
		if next.LongestStreak < next.CurrentStreak {
			next.LongestStreak = next.CurrentStreak
		}
		next.LastActivityDate = &today
		return next, true
	default:
		next.CurrentStreak = 1
		next.LastActivityDate = &today
		return next, true
	}
}
