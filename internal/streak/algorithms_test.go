package streak

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestAdvanceFirstActivity(t *testing.T) {
	today := day(2026, time.August, 10)

	next, changed := Advance(Snapshot{}, today)
	if !changed {
		t.Fatal("首次活动应产生状态变化")
	}
	if next.CurrentStreak != 1 || next.LongestStreak != 1 {
		t.Errorf("首次活动后 current=%d longest=%d, 期望 1/1", next.CurrentStreak, next.LongestStreak)
	}
	if next.LastActivityDate == nil || !next.LastActivityDate.Equal(today) {
		t.Errorf("最近活动日应为今天")
	}
}

func TestAdvanceConsecutiveDay(t *testing.T) {
	yesterday := day(2026, time.August, 9)
	today := day(2026, time.August, 10)

	next, changed := Advance(Snapshot{
		CurrentStreak:    4,
		LongestStreak:    4,
		LastActivityDate: &yesterday,
	}, today)
	if !changed {
		t.Fatal("连续第二天应推进连击")
	}
	if next.CurrentStreak != 5 || next.LongestStreak != 5 {
		t.Errorf("延续后 current=%d longest=%d, 期望 5/5", next.CurrentStreak, next.LongestStreak)
	}
}

func TestAdvanceSameDayIsIdempotent(t *testing.T) {
	today := day(2026, time.August, 10)

	before := Snapshot{CurrentStreak: 3, LongestStreak: 6, LastActivityDate: &today}
	next, changed := Advance(before, today)
	if changed {
		t.Fatal("同一天的重复活动不应产生状态变化")
	}
	if next != before {
		t.Errorf("同日重复调用应原样返回快照")
	}
}

func TestAdvanceGapResetsCurrentKeepsLongest(t *testing.T) {
	lastWeek := day(2026, time.August, 3)
	today := day(2026, time.August, 10)

	next, changed := Advance(Snapshot{
		CurrentStreak:    9,
		LongestStreak:    9,
		LastActivityDate: &lastWeek,
	}, today)
	if !changed {
		t.Fatal("断签后重新活动应产生状态变化")
	}
	if next.CurrentStreak != 1 {
		t.Errorf("断签后 current=%d, 期望 1", next.CurrentStreak)
	}
	if next.LongestStreak != 9 {
		t.Errorf("断签不应影响最长连击, longest=%d", next.LongestStreak)
	}
}

func TestAdvanceDaySequence(t *testing.T) {
	// D1 → D2 → 跳过D3 → D4 的完整走位
	d1 := day(2026, time.August, 1)

	s, _ := Advance(Snapshot{}, d1)
	if s.CurrentStreak != 1 {
		t.Fatalf("D1后 current=%d, 期望 1", s.CurrentStreak)
	}

	s, _ = Advance(s, d1.AddDate(0, 0, 1))
	if s.CurrentStreak != 2 || s.LongestStreak != 2 {
		t.Fatalf("D2后 current=%d longest=%d, 期望 2/2", s.CurrentStreak, s.LongestStreak)
	}

	s, _ = Advance(s, d1.AddDate(0, 0, 3))
	if s.CurrentStreak != 1 || s.LongestStreak != 2 {
		t.Fatalf("跳过一天后 current=%d longest=%d, 期望 1/2", s.CurrentStreak, s.LongestStreak)
	}
}

func TestAdvanceTruncatesTimeOfDay(t *testing.T) {
	lastNight := time.Date(2026, time.August, 9, 23, 50, 0, 0, time.Local)
	thisMorning := time.Date(2026, time.August, 10, 0, 5, 0, 0, time.Local)

	next, changed := Advance(Snapshot{
		CurrentStreak:    1,
		LongestStreak:    1,
		LastActivityDate: &lastNight,
	}, thisMorning)
	if !changed || next.CurrentStreak != 2 {
		t.Errorf("跨零点十五分钟应按昨天/今天处理, current=%d", next.CurrentStreak)
	}
}
