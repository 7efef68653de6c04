package social

import (
	"errors"
	"net/http"

	"github.com/SlpAus/questify-backend/internal/user"
	"github.com/SlpAus/questify-backend/pkg/calendar"
	"github.com/gin-gonic/gin"
)

// AddFriendRequestBody 定义了添加好友接口的请求体。
type AddFriendRequestBody struct {
	FriendUsername string `json:"friend_username" binding:"required"`
}

// SendNudgeRequestBody 定义了发送催促接口的请求体。
type SendNudgeRequestBody struct {
	ToUserID string `json:"to_user_id" binding:"required,uuid"`
	GoalID   string `json:"goal_id" binding:"required,uuid"`
}

// AddFriendHandler 处理按用户名添加好友。
// 成功后不直接返回响应，交给链上的徽章重评Handler收尾。
func AddFriendHandler(c *gin.Context) {
	var body AddFriendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	friend, err := AddFriend(user.CurrentUserID(c), body.FriendUsername)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
		case errors.Is(err, ErrSelfFriendship):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "不能添加自己为好友"})
		case errors.Is(err, ErrAlreadyFriends):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "已经是好友了"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "添加好友失败"})
		}
		return
	}

	c.Set("response", gin.H{"message": "好友添加成功", "friendId": friend.UUID})
	c.Next()
}

// ListFriendsHandler 返回好友列表。
func ListFriendsHandler(c *gin.Context) {
	friends, err := ListFriends(user.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询好友列表失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// GetFeedHandler 返回好友动态和可催促的目标。
func GetFeedHandler(c *gin.Context) {
	items, nudgable, err := Feed(user.CurrentUserID(c), calendar.Today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询好友动态失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feed": items, "incompleteGoals": nudgable})
}

// SendNudgeHandler 处理发送催促。
// 与添加好友一样，成功后由链上的徽章重评Handler收尾。
func SendNudgeHandler(c *gin.Context) {
	var body SendNudgeRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	nudge, err := SendNudge(user.CurrentUserID(c), body.ToUserID, body.GoalID)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
		case errors.Is(err, ErrNudgeTargetInvalid):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "被催促的目标不存在"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "发送催促失败"})
		}
		return
	}

	c.Set("response", gin.H{"message": "催促已发送", "nudgeMessage": nudge.Message})
	c.Next()
}
