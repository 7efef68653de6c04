package motivation

import "math/rand"

// 静态兜底文案表。AI服务失败或未配置时使用，必须覆盖所有Kind，
// 保证台账操作永远不会因为文案依赖不可用而失败或阻塞。
var fallbackTexts = map[Kind][]string{
	KindCompletion: {
		"干得漂亮！保持这个势头！",
		"又完成一项，你在稳步变强！",
		"做到了！这就是坚持的样子！",
		"今天的努力，未来都会记账。继续！",
	},
	KindNudge: {
		"你的目标在等你，今天也去打个卡吧！",
		"别让今天溜走，进度条差你一下！",
		"每一步都算数，现在就开始！",
		"朋友在为你加油，去完成今天的任务吧！",
	},
	KindFailureAlert: {
		"进度有点落后，但现在追赶一点都不晚。",
		"慢一点没关系，停下来才可惜。今天补一步？",
		"计划被打乱很正常，重要的是重新开始。",
	},
	KindDashboardQuote: {
		"成功是每天重复的小小努力之和。",
		"相信自己能做到，你就已经成功了一半。",
		"追求进步，而不是完美。",
		"未来取决于你今天做了什么。",
		"看起来不可能的事，做完就不觉得了。",
	},
	KindBadgeUnlock: {
		"恭喜解锁新徽章！这是你坚持的勋章！",
		"新成就达成！收下这份荣誉吧！",
	},
}

// Fallback 从兜底文案表中为指定类型随机取一条。
// 未知类型退化为每日格言，与外部服务失败时的行为保持一致。
func Fallback(kind Kind) string {
	texts, ok := fallbackTexts[kind]
	if !ok {
		texts = fallbackTexts[KindDashboardQuote]
	}
	return texts[rand.Intn(len(texts))]
}
