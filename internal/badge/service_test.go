package badge

import (
	"fmt"
	"testing"
	"time"

	"github.com/SlpAus/questify-backend/internal/completion"
	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/SlpAus/questify-backend/internal/social"
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
	err = db.AutoMigrate(&user.User{}, &completion.Completion{}, &social.Friendship{}, &social.Nudge{}, &Badge{})
	if err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	database.DB = db
}

func createUser(t *testing.T, id string, current, longest int) {
	t.Helper()
	u := user.User{UUID: id, Username: id, CurrentStreak: current, LongestStreak: longest}
	if err := database.DB.Create(&u).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
}

func TestGrantIsSetInsertion(t *testing.T) {
	setupTestDB(t)
	createUser(t, "user-a", 0, 0)

	isNew, err := Grant(database.DB, "user-a", TypeFirstSteps)
	if err != nil {
		t.Fatal(err)
	}
	if !isNew {
		t.Error("首次授予应返回true")
	}

	isNew, err = Grant(database.DB, "user-a", TypeFirstSteps)
	if err != nil {
		t.Fatal(err)
	}
	if isNew {
		t.Error("重复授予应返回false且不报错")
	}

	count, _ := CountForUser("user-a")
	if count != 1 {
		t.Errorf("徽章数 = %d, 期望 1", count)
	}
}

func TestEvaluateGrantsAndIsIdempotent(t *testing.T) {
	setupTestDB(t)
	createUser(t, "user-a", 7, 7)
	today := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.Local)
	if _, err := completion.Record(database.DB, "goal-1", "user-a", completion.FrequencyDaily, today, 10); err != nil {
		t.Fatal(err)
	}

	granted, err := Evaluate("user-a")
	if err != nil {
		t.Fatal(err)
	}
	want := map[Type]bool{TypeFirstSteps: true, TypeWeekWarrior: true}
	if len(granted) != len(want) {
		t.Fatalf("首次评估授予 %v, 期望 First Steps + Week Warrior", granted)
	}
	for _, g := range granted {
		if !want[g] {
			t.Errorf("意外授予了 %s", g)
		}
	}

	// 计数器不变的第二次评估不授予任何徽章
	granted, err = Evaluate("user-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(granted) != 0 {
		t.Errorf("重复评估授予了 %v, 期望空", granted)
	}
}

func TestEvaluateInSeesUncommittedRows(t *testing.T) {
	setupTestDB(t)
	createUser(t, "user-a", 0, 0)
	today := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.Local)

	// 完成动作与徽章评估在同一事务内：评估必须看到尚未提交的台账行
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := completion.Record(tx, "goal-1", "user-a", completion.FrequencyDaily, today, 10); err != nil {
			return err
		}
		granted, err := EvaluateIn(tx, "user-a")
		if err != nil {
			return err
		}
		if len(granted) != 1 || granted[0] != TypeFirstSteps {
			t.Errorf("事务内评估授予 %v, 期望 [First Steps]", granted)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestEvaluateSocialCounters(t *testing.T) {
	setupTestDB(t)
	createUser(t, "user-a", 0, 0)

	for i := 0; i < 10; i++ {
		f := social.Friendship{UserID: "user-a", FriendID: fmt.Sprintf("friend-%d", i)}
		if err := database.DB.Create(&f).Error; err != nil {
			t.Fatal(err)
		}
	}

	granted, err := Evaluate("user-a")
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, g := range granted {
		if g == TypeSocialButterfly {
			found = true
		}
	}
	if !found {
		t.Errorf("10个好友应解锁Social Butterfly, 实际授予 %v", granted)
	}
}
