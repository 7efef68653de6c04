package social

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/SlpAus/questify-backend/internal/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	database.UpdateStatus(false)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &Friendship{}, &Nudge{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	database.DB = db
}

func registerUser(t *testing.T, username string) string {
	t.Helper()
	u, err := user.Register(username)
	if err != nil {
		t.Fatalf("注册测试用户失败: %v", err)
	}
	return u.UUID
}

func TestAddFriendWritesBothDirections(t *testing.T) {
	setupTestDB(t)
	alice := registerUser(t, "alice")
	bob := registerUser(t, "bob")

	friend, err := AddFriend(alice, "bob")
	if err != nil {
		t.Fatal(err)
	}
	if friend.UUID != bob {
		t.Errorf("返回的好友 = %s, 期望 %s", friend.UUID, bob)
	}

	// 双向各计一个好友
	aliceCount, _ := FriendCount(database.DB, alice)
	bobCount, _ := FriendCount(database.DB, bob)
	if aliceCount != 1 || bobCount != 1 {
		t.Errorf("好友数 alice=%d bob=%d, 期望各为1", aliceCount, bobCount)
	}
}

func TestAddFriendRejectsSelfAndDuplicates(t *testing.T) {
	setupTestDB(t)
	alice := registerUser(t, "alice")
	registerUser(t, "bob")

	if _, err := AddFriend(alice, "alice"); !errors.Is(err, ErrSelfFriendship) {
		t.Errorf("加自己为好友应返回ErrSelfFriendship, 实际: %v", err)
	}

	if _, err := AddFriend(alice, "bob"); err != nil {
		t.Fatal(err)
	}
	if _, err := AddFriend(alice, "bob"); !errors.Is(err, ErrAlreadyFriends) {
		t.Errorf("重复添加应返回ErrAlreadyFriends, 实际: %v", err)
	}

	// 失败的重复添加不应留下多余行
	count, _ := FriendCount(database.DB, alice)
	if count != 1 {
		t.Errorf("好友数 = %d, 期望 1", count)
	}
}

func TestAddFriendUnknownUsername(t *testing.T) {
	setupTestDB(t)
	alice := registerUser(t, "alice")

	if _, err := AddFriend(alice, "ghost"); !errors.Is(err, user.ErrUserNotFound) {
		t.Errorf("未知用户名应返回ErrUserNotFound, 实际: %v", err)
	}
}

func TestListFriendsIncludesGamificationSummary(t *testing.T) {
	setupTestDB(t)
	alice := registerUser(t, "alice")
	bob := registerUser(t, "bob")
	database.DB.Model(&user.User{}).Where("uuid = ?", bob).
		Updates(map[string]interface{}{"total_points": 120, "current_streak": 4})

	if _, err := AddFriend(alice, "bob"); err != nil {
		t.Fatal(err)
	}

	friends, err := ListFriends(alice)
	if err != nil {
		t.Fatal(err)
	}
	if len(friends) != 1 {
		t.Fatalf("好友列表长度 = %d, 期望 1", len(friends))
	}
	f := friends[0]
	if f.Username != "bob" || f.TotalPoints != 120 || f.CurrentStreak != 4 {
		t.Errorf("好友概况 = %+v, 期望 bob/120分/4连击", f)
	}
}

func TestDeleteNudgesForGoalCascades(t *testing.T) {
	setupTestDB(t)
	alice := registerUser(t, "alice")
	bob := registerUser(t, "bob")

	for i := 0; i < 2; i++ {
		n := Nudge{FromUserID: alice, ToUserID: bob, GoalID: "goal-1", Message: "加油"}
		if err := database.DB.Create(&n).Error; err != nil {
			t.Fatal(err)
		}
	}
	n := Nudge{FromUserID: alice, ToUserID: bob, GoalID: "goal-2", Message: "加油"}
	if err := database.DB.Create(&n).Error; err != nil {
		t.Fatal(err)
	}

	if err := DeleteNudgesForGoal(database.DB, "goal-1"); err != nil {
		t.Fatal(err)
	}

	sent, _ := NudgesSent(database.DB, alice)
	if sent != 1 {
		t.Errorf("级联删除后催促数 = %d, 期望 1", sent)
	}
}
