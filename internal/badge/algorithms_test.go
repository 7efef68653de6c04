package badge

import (
	"testing"
)

func contains(types []Type, target Type) bool {
	for _, t := range types {
		if t == target {
			return true
		}
	}
	return false
}

func TestRuleThresholds(t *testing.T) {
	cases := []struct {
		name     string
		counters Counters
		want     Type
		granted  bool
	}{
		{"首次完成解锁First Steps", Counters{CompletedTasks: 1}, TypeFirstSteps, true},
		{"零完成不解锁First Steps", Counters{}, TypeFirstSteps, false},
		{"7天连击解锁Week Warrior", Counters{CurrentStreak: 7, LongestStreak: 7}, TypeWeekWarrior, true},
		{"6天连击不解锁Week Warrior", Counters{CurrentStreak: 6, LongestStreak: 6}, TypeWeekWarrior, false},
		{"30天连击解锁Monthly Master", Counters{CurrentStreak: 30, LongestStreak: 30}, TypeMonthlyMaster, true},
		{"5个不同目标解锁Goal Crusher", Counters{DistinctGoals: 5}, TypeGoalCrusher, true},
		{"4个不同目标不解锁Goal Crusher", Counters{DistinctGoals: 4}, TypeGoalCrusher, false},
		{"10个好友解锁Social Butterfly", Counters{FriendCount: 10}, TypeSocialButterfly, true},
		{"20次催促解锁Helping Hand", Counters{NudgesSent: 20}, TypeHelpingHand, true},
		{"断签后攒回3天解锁Comeback Kid", Counters{CurrentStreak: 3, LongestStreak: 8}, TypeComebackKid, true},
		{"当前即最长不算东山再起", Counters{CurrentStreak: 8, LongestStreak: 8}, TypeComebackKid, false},
		{"攒回2天还不算东山再起", Counters{CurrentStreak: 2, LongestStreak: 8}, TypeComebackKid, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := contains(satisfiedTypes(tc.counters), tc.want)
			if got != tc.granted {
				t.Errorf("satisfiedTypes(%+v) 含 %s = %v, 期望 %v", tc.counters, tc.want, got, tc.granted)
			}
		})
	}
}

func TestLeaderboardRoyalNeverInTable(t *testing.T) {
	// 即使计数器全部拉满，评估器也不授予结算专属徽章
	maxed := Counters{
		CompletedTasks: 1000,
		DistinctGoals:  1000,
		FriendCount:    1000,
		NudgesSent:     1000,
		CurrentStreak:  365,
		LongestStreak:  365,
	}
	if contains(satisfiedTypes(maxed), TypeLeaderboardRoyal) {
		t.Error("Leaderboard King/Queen 不应由规则表授予")
	}
}

func TestRulesAreIndependent(t *testing.T) {
	// 多条规则同时满足时全部返回
	c := Counters{CompletedTasks: 10, DistinctGoals: 5, CurrentStreak: 7, LongestStreak: 7}
	got := satisfiedTypes(c)
	for _, want := range []Type{TypeFirstSteps, TypeWeekWarrior, TypeGoalCrusher} {
		if !contains(got, want) {
			t.Errorf("期望同时解锁 %s, 实际 %v", want, got)
		}
	}
}
