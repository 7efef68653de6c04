package api

import (
	"github.com/SlpAus/questify-backend/internal/badge"
	"github.com/SlpAus/questify-backend/internal/goal"
	"github.com/SlpAus/questify-backend/internal/leaderboard"
	"github.com/SlpAus/questify-backend/internal/motivation"
	"github.com/SlpAus/questify-backend/internal/profile"
	"github.com/SlpAus/questify-backend/internal/social"
	"github.com/SlpAus/questify-backend/internal/streak"
	"github.com/SlpAus/questify-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 用户相关的路由
		userRoutes := api.Group("/users")
		{
			userRoutes.POST("/register", user.RegisterHandler)
			userRoutes.GET("/:id", user.GetUserHandler)
			userRoutes.GET("/:id/stats", profile.GetStatsHandler)
		}

		// 游戏化状态相关的路由
		gamificationRoutes := api.Group("/gamification")
		{
			gamificationRoutes.GET("/streak", user.RequireUserMiddleware(), streak.GetStreakHandler)
			gamificationRoutes.GET("/badges", user.RequireUserMiddleware(), badge.GetBadgesHandler)
			gamificationRoutes.GET("/quote", motivation.GetQuoteHandler)
		}

		// 目标与打卡相关的路由
		goalRoutes := api.Group("/goals", user.RequireUserMiddleware())
		{
			goalRoutes.POST("", goal.CreateGoalHandler)
			goalRoutes.GET("", goal.ListGoalsHandler)
			goalRoutes.GET("/progress", goal.GetProgressHandler)
			goalRoutes.GET("/failure-alerts", goal.GetFailureAlertsHandler)
			goalRoutes.POST("/:id/complete", goal.CompleteTaskHandler)
			goalRoutes.DELETE("/:id", goal.DeleteGoalHandler)
		}

		// 排行榜相关的路由
		leaderboardRoutes := api.Group("/leaderboard")
		{
			leaderboardRoutes.GET("/current", user.OptionalUserMiddleware(), leaderboard.GetCurrentHandler)
			leaderboardRoutes.GET("/history", user.RequireUserMiddleware(), leaderboard.GetHistoryHandler)
			leaderboardRoutes.GET("/all-time", leaderboard.GetAllTimeHandler)
		}

		// 社交相关的路由。写操作用Handler链收尾：
		// 动作成功后由badge.ReevaluateHandler重评徽章并发出响应。
		socialRoutes := api.Group("/social", user.RequireUserMiddleware())
		{
			socialRoutes.POST("/friends", social.AddFriendHandler, badge.ReevaluateHandler)
			socialRoutes.GET("/friends", social.ListFriendsHandler)
			socialRoutes.GET("/feed", social.GetFeedHandler)
			socialRoutes.POST("/nudges", social.SendNudgeHandler, badge.ReevaluateHandler)
		}

		// 供外部调度器使用的作业触发接口
		adminRoutes := api.Group("/admin/jobs")
		{
			adminRoutes.POST("/rollover", leaderboard.RunRolloverHandler)
			adminRoutes.POST("/streak-decay", streak.RunDecayHandler)
		}
	}
}
