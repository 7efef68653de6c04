package leaderboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/SlpAus/questify-backend/internal/badge"
	"github.com/SlpAus/questify-backend/internal/completion"
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
	err = db.AutoMigrate(&user.User{}, &MonthlyEntry{}, &HistoryEntry{}, &badge.Badge{})
	if err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	database.DB = db
}

func createUser(t *testing.T, id, username string, createdAt time.Time) {
	t.Helper()
	u := user.User{UUID: id, Username: username, CreatedAt: createdAt}
	if err := database.DB.Create(&u).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
}

func TestTariff(t *testing.T) {
	if Tariff(completion.FrequencyDaily) != 10 {
		t.Error("每日目标应计10分")
	}
	if Tariff(completion.FrequencyWeekly) != 50 {
		t.Error("每周目标应计50分")
	}
}

func TestApplyCompletionAccumulates(t *testing.T) {
	setupTestDB(t)
	createUser(t, "user-a", "alice", time.Now())

	for i := 0; i < 3; i++ {
		if err := ApplyCompletion(database.DB, "user-a", 10); err != nil {
			t.Fatal(err)
		}
	}

	u, err := user.GetByID("user-a")
	if err != nil {
		t.Fatal(err)
	}
	if u.TotalPoints != 30 {
		t.Errorf("总积分 = %d, 期望 30", u.TotalPoints)
	}

	var entry MonthlyEntry
	if err := database.DB.Where("user_id = ?", "user-a").First(&entry).Error; err != nil {
		t.Fatal(err)
	}
	if entry.Points != 30 {
		t.Errorf("月度积分 = %d, 期望 30", entry.Points)
	}
}

func TestRefundClampsMonthlyButNotLifetime(t *testing.T) {
	setupTestDB(t)
	createUser(t, "user-a", "alice", time.Now())

	// 本月只有10分在账上，但历史上这个目标赚过50分
	if err := ApplyCompletion(database.DB, "user-a", 10); err != nil {
		t.Fatal(err)
	}
	history := HistoryEntry{UserID: "user-a", Month: 7, Year: 2026, FinalPoints: 30, Rank: 2}
	if err := database.DB.Create(&history).Error; err != nil {
		t.Fatal(err)
	}

	if err := RefundPoints(database.DB, "user-a", 50); err != nil {
		t.Fatal(err)
	}

	// 终身总积分不截断：10 - 50 = -40
	u, _ := user.GetByID("user-a")
	if u.TotalPoints != -40 {
		t.Errorf("终身总积分 = %d, 期望 -40 (退款不截断)", u.TotalPoints)
	}

	// 月度与历史截断到零
	var entry MonthlyEntry
	database.DB.Where("user_id = ?", "user-a").First(&entry)
	if entry.Points != 0 {
		t.Errorf("月度积分 = %d, 期望 0 (截断)", entry.Points)
	}
	var h HistoryEntry
	database.DB.Where("user_id = ?", "user-a").First(&h)
	if h.FinalPoints != 0 {
		t.Errorf("历史积分 = %d, 期望 0 (截断)", h.FinalPoints)
	}
}

func TestRefundZeroIsNoOp(t *testing.T) {
	setupTestDB(t)
	createUser(t, "user-a", "alice", time.Now())

	if err := RefundPoints(database.DB, "user-a", 0); err != nil {
		t.Fatal(err)
	}
	u, _ := user.GetByID("user-a")
	if u.TotalPoints != 0 {
		t.Errorf("零退款不应改动积分, total=%d", u.TotalPoints)
	}
}

func TestCurrentTopTieBreakByRegistrationOrder(t *testing.T) {
	setupTestDB(t)
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.Local)
	createUser(t, "user-b", "bob", base.AddDate(0, 0, 1)) // 后注册
	createUser(t, "user-a", "alice", base)                // 先注册

	if err := ApplyCompletion(database.DB, "user-a", 30); err != nil {
		t.Fatal(err)
	}
	if err := ApplyCompletion(database.DB, "user-b", 30); err != nil {
		t.Fatal(err)
	}

	top, err := CurrentTop(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 {
		t.Fatalf("榜单行数 = %d, 期望 2", len(top))
	}
	// 同分时先注册的排前面
	if top[0].UserID != "user-a" || top[0].Rank != 1 {
		t.Errorf("第一名 = %s(rank %d), 期望 user-a(rank 1)", top[0].UserID, top[0].Rank)
	}
	if top[1].UserID != "user-b" {
		t.Errorf("第二名 = %s, 期望 user-b", top[1].UserID)
	}
}

func TestCurrentTopExcludesZeroPoints(t *testing.T) {
	setupTestDB(t)
	createUser(t, "user-a", "alice", time.Now())
	if err := EnsureEntry("user-a"); err != nil {
		t.Fatal(err)
	}

	top, err := CurrentTop(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 0 {
		t.Errorf("零分参赛行不应上榜, 实际 %d 行", len(top))
	}
}

func TestRankForLazilyCreatesEntry(t *testing.T) {
	setupTestDB(t)
	createUser(t, "user-a", "alice", time.Now())

	rank, err := RankFor("user-a")
	if err != nil {
		t.Fatal(err)
	}
	if rank.Rank != 0 || rank.Points != 0 {
		t.Errorf("首次查看应返回rank=0 points=0, 实际 %+v", rank)
	}

	var count int64
	database.DB.Model(&MonthlyEntry{}).Where("user_id = ?", "user-a").Count(&count)
	if count != 1 {
		t.Errorf("首次查看应惰性创建参赛行, 实际 %d 行", count)
	}
}

func TestRankForCountsAhead(t *testing.T) {
	setupTestDB(t)
	createUser(t, "user-a", "alice", time.Now())
	createUser(t, "user-b", "bob", time.Now())
	createUser(t, "user-c", "carol", time.Now())

	if err := ApplyCompletion(database.DB, "user-a", 50); err != nil {
		t.Fatal(err)
	}
	if err := ApplyCompletion(database.DB, "user-b", 30); err != nil {
		t.Fatal(err)
	}
	if err := ApplyCompletion(database.DB, "user-c", 10); err != nil {
		t.Fatal(err)
	}

	rank, err := RankFor("user-b")
	if err != nil {
		t.Fatal(err)
	}
	if rank.Rank != 2 || rank.Points != 30 {
		t.Errorf("user-b名次 = %+v, 期望 rank=2 points=30", rank)
	}
}
