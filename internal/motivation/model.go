package motivation

// Kind 枚举了系统会向AI文案服务请求的所有文案类型。
type Kind string

const (
	// KindCompletion 任务完成后的庆祝语。
	KindCompletion Kind = "completion"
	// KindNudge 好友催促(nudge)的鼓励语。
	KindNudge Kind = "nudge"
	// KindFailureAlert 进度落后提醒中的打气语。
	KindFailureAlert Kind = "failure_alert"
	// KindDashboardQuote 仪表盘每日格言。
	KindDashboardQuote Kind = "dashboard_quote"
	// KindBadgeUnlock 徽章解锁的祝贺语。
	KindBadgeUnlock Kind = "badge_unlock"
)

// Context 是生成文案时可用的上下文信息，键按类型约定：
// goal_type（目标类别）、goal_title（目标标题）、badge_name（徽章名）。
type Context map[string]string
