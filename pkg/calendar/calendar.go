// Package calendar 集中所有"今天是哪天"的口径：
// 日历日截断、周期键、以及作业调度用的下一时间点计算。
// 所有计算都在服务器本地时区进行，全系统共用同一口径。
package calendar

import (
	"math"
	"time"
)

// DateLayout 是周期键和日期序列化统一使用的格式。
const DateLayout = "2006-01-02"

// Truncate 把时间截断到当天零点（本地时区）。
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today 返回今天的日历日（本地时区零点）。
func Today() time.Time {
	return Truncate(time.Now())
}

// Yesterday 返回参考日期前一天的日历日。
func Yesterday(ref time.Time) time.Time {
	return Truncate(ref).AddDate(0, 0, -1)
}

// SameDay 判断两个时间是否落在同一个日历日。
func SameDay(a, b time.Time) bool {
	return Truncate(a).Equal(Truncate(b))
}

// StartOfWeek 返回参考日期所在周的周日零点。
// 周以周日为锚点：周日返回自身，周六返回六天前的周日。
func StartOfWeek(t time.Time) time.Time {
	d := Truncate(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// DayKey 返回日频目标的周期键：参考日期本身。
func DayKey(t time.Time) string {
	return Truncate(t).Format(DateLayout)
}

// WeekKey 返回周频目标的周期键：所在周的周日。
func WeekKey(t time.Time) string {
	return StartOfWeek(t).Format(DateLayout)
}

// DaysBetweenCeil 返回from到to之间的天数，不足一天按一天计。
// to早于或等于from时返回0。
func DaysBetweenCeil(from, to time.Time) int {
	diff := to.Sub(from)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// PreviousMonth 返回参考时间的上一个自然月（结算归档的目标月份）。
func PreviousMonth(ref time.Time) (month int, year int) {
	prev := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, 0, -1)
	return int(prev.Month()), prev.Year()
}

// NextMidnight 返回参考时间之后的下一个零点（每日清扫的触发时刻）。
func NextMidnight(ref time.Time) time.Time {
	return Truncate(ref).AddDate(0, 0, 1)
}

// NextMonthStart 返回参考时间之后的下一个月初零点（月度结算的触发时刻）。
func NextMonthStart(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, 1, 0)
}
