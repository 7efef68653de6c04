package badge

// Counters 是评估徽章规则所需的派生计数器快照。
// 评估前一次性取齐，评估过程中不再读库，因此各规则之间天然无序、互不影响。
type Counters struct {
	CompletedTasks int64 // 完成任务总数
	DistinctGoals  int64 // 完成过的不同目标数
	FriendCount    int64 // 好友数
	NudgesSent     int64 // 发出的催促数
	CurrentStreak  int   // 当前连击
	LongestStreak  int   // 最长连击
}

// rule 把一个徽章绑定到一条关于计数器的判定条件。
type rule struct {
	Type      Type
	Satisfied func(c Counters) bool
}

// ruleTable 是评估器的全部规则，以数据而非条件分支表达，逐条可测。
// "Leaderboard King/Queen" 不在表中：它只由月度结算授予。
var ruleTable = []rule{
	{TypeFirstSteps, func(c Counters) bool { return c.CompletedTasks >= 1 }},
	{TypeWeekWarrior, func(c Counters) bool { return c.CurrentStreak >= 7 }},
	{TypeMonthlyMaster, func(c Counters) bool { return c.CurrentStreak >= 30 }},
	{TypeGoalCrusher, func(c Counters) bool { return c.DistinctGoals >= 5 }},
	{TypeSocialButterfly, func(c Counters) bool { return c.FriendCount >= 10 }},
	{TypeHelpingHand, func(c Counters) bool { return c.NudgesSent >= 20 }},
	// 断签后重新攒回3天连击，且历史最长高于当前，说明是一次“东山再起”
	{TypeComebackKid, func(c Counters) bool {
		return c.LongestStreak > c.CurrentStreak && c.CurrentStreak >= 3
	}},
}

// satisfiedTypes 返回计数器快照满足条件的全部徽章类型。
func satisfiedTypes(c Counters) []Type {
	var types []Type
	for _, r := range ruleTable {
		if r.Satisfied(c) {
			types = append(types, r.Type)
		}
	}
	return types
}
