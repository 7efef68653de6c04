package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestStartOfWeekAnchorsOnSunday(t *testing.T) {
	// 2026-08-23 是周日
	sunday := date(2026, time.August, 23)
	cases := []struct {
		name string
		in   time.Time
	}{
		{"周日返回自身", sunday},
		{"周一", sunday.AddDate(0, 0, 1)},
		{"周三", sunday.AddDate(0, 0, 3)},
		{"周六", sunday.AddDate(0, 0, 6)},
	}
	for _, tc := range cases {
		if got := StartOfWeek(tc.in); !got.Equal(sunday) {
			t.Errorf("%s: StartOfWeek(%v) = %v, 期望 %v", tc.name, tc.in, got, sunday)
		}
	}

	// 下一个周日开启新的一周
	nextSunday := sunday.AddDate(0, 0, 7)
	if got := StartOfWeek(nextSunday); !got.Equal(nextSunday) {
		t.Errorf("StartOfWeek(下周日) = %v, 期望 %v", got, nextSunday)
	}
}

func TestWeekKeySpansExactlySevenDays(t *testing.T) {
	sunday := date(2026, time.August, 23)
	key := WeekKey(sunday)
	for i := 0; i < 7; i++ {
		if got := WeekKey(sunday.AddDate(0, 0, i)); got != key {
			t.Errorf("第%d天的WeekKey = %s, 期望 %s", i, got, key)
		}
	}
	if got := WeekKey(sunday.AddDate(0, 0, 7)); got == key {
		t.Errorf("下周日不应落在同一个周期键内")
	}
}

func TestDayKeyFormat(t *testing.T) {
	in := time.Date(2026, time.January, 5, 23, 59, 0, 0, time.Local)
	if got := DayKey(in); got != "2026-01-05" {
		t.Errorf("DayKey = %s, 期望 2026-01-05", got)
	}
}

func TestDaysBetweenCeil(t *testing.T) {
	base := date(2026, time.August, 1)
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"整20天", base, base.AddDate(0, 0, 20), 20},
		{"不足一天按一天计", base, base.Add(6 * time.Hour), 1},
		{"十天半向上取整", base, base.AddDate(0, 0, 10).Add(12 * time.Hour), 11},
		{"同一时刻", base, base, 0},
		{"终点早于起点", base, base.AddDate(0, 0, -3), 0},
	}
	for _, tc := range cases {
		if got := DaysBetweenCeil(tc.from, tc.to); got != tc.want {
			t.Errorf("%s: DaysBetweenCeil = %d, 期望 %d", tc.name, got, tc.want)
		}
	}
}

func TestPreviousMonthAcrossYearBoundary(t *testing.T) {
	m, y := PreviousMonth(date(2026, time.January, 15))
	if m != 12 || y != 2025 {
		t.Errorf("PreviousMonth(2026-01) = %d/%d, 期望 12/2025", m, y)
	}

	m, y = PreviousMonth(date(2026, time.August, 1))
	if m != 7 || y != 2026 {
		t.Errorf("PreviousMonth(2026-08) = %d/%d, 期望 7/2026", m, y)
	}
}

func TestNextBoundaries(t *testing.T) {
	ref := time.Date(2026, time.August, 27, 14, 30, 0, 0, time.Local)

	if got := NextMidnight(ref); !got.Equal(date(2026, time.August, 28)) {
		t.Errorf("NextMidnight = %v", got)
	}
	if got := NextMonthStart(ref); !got.Equal(date(2026, time.September, 1)) {
		t.Errorf("NextMonthStart = %v", got)
	}
	// 12月翻年
	dec := time.Date(2026, time.December, 31, 23, 0, 0, 0, time.Local)
	if got := NextMonthStart(dec); !got.Equal(date(2027, time.January, 1)) {
		t.Errorf("NextMonthStart(12月) = %v", got)
	}
}

func TestYesterdayAndSameDay(t *testing.T) {
	noon := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.Local)
	if got := Yesterday(noon); !got.Equal(date(2026, time.February, 28)) {
		t.Errorf("Yesterday(3月1日) = %v, 期望 2月28日", got)
	}
	if !SameDay(noon, date(2026, time.March, 1)) {
		t.Errorf("同一天的不同时刻应判定为SameDay")
	}
	if SameDay(noon, date(2026, time.March, 2)) {
		t.Errorf("不同日历日不应判定为SameDay")
	}
}
