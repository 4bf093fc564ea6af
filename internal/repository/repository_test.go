package repository

import (
	"context"
	"testing"

	"studylog_backend/internal/model"
	"studylog_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestImagesByNameExactMatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMaterialRepository(db)

	db.Create(&model.Material{UserID: 1, Name: "英語", Image: "https://img/eigo.png"})
	db.Create(&model.Material{UserID: 1, Name: "数学", Image: ""})

	images, err := repo.ImagesByName(context.Background(), []string{"英語", "英語 ", "数学", "理科"})
	if err != nil {
		t.Fatal(err)
	}

	if images["英語"] != "https://img/eigo.png" {
		t.Errorf("exact name lookup = %q, want eigo.png", images["英語"])
	}
	if _, ok := images["英語 "]; ok {
		t.Error("trailing-space name must not match")
	}
	if _, ok := images["数学"]; ok {
		t.Error("material without an image must be skipped")
	}
	if _, ok := images["理科"]; ok {
		t.Error("unknown name must not match")
	}
}

func TestImagesByNameEmptyInput(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMaterialRepository(db)

	images, err := repo.ImagesByName(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(images) != 0 {
		t.Errorf("images = %v, want empty", images)
	}
}

func TestImagesByNameFirstRowWins(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMaterialRepository(db)

	db.Create(&model.Material{UserID: 1, Name: "英語", Image: "first.png"})
	db.Create(&model.Material{UserID: 2, Name: "英語", Image: "second.png"})

	images, err := repo.ImagesByName(context.Background(), []string{"英語"})
	if err != nil {
		t.Fatal(err)
	}
	if images["英語"] != "first.png" {
		t.Errorf("duplicate names resolved to %q, want first.png", images["英語"])
	}
}

func TestFollowLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db, nil)
	ctx := context.Background()

	if err := repo.Create(ctx, &model.Follow{FollowerID: 1, FollowingID: 2}); err != nil {
		t.Fatal(err)
	}

	exists, err := repo.Exists(1, 2)
	if err != nil || !exists {
		t.Fatalf("Exists(1,2) = %v, %v, want true", exists, err)
	}
	if exists, _ = repo.Exists(2, 1); exists {
		t.Error("follow edge must be directed, reverse edge should not exist")
	}

	ids, err := repo.FollowingIDsCached(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("FollowingIDsCached = %v, want [2]", ids)
	}

	affected, err := repo.Delete(ctx, 1, 2)
	if err != nil || affected != 1 {
		t.Fatalf("Delete = %d, %v, want 1 row", affected, err)
	}

	affected, err = repo.Delete(ctx, 1, 2)
	if err != nil || affected != 0 {
		t.Errorf("second Delete = %d, %v, want 0 rows", affected, err)
	}
}

func TestProfileGetOrCreateLazy(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)

	profile, err := repo.GetOrCreate(42)
	if err != nil {
		t.Fatal(err)
	}
	if profile.UserID != 42 || profile.DisplayName != "" {
		t.Errorf("lazy profile = %+v", profile)
	}

	profile.DisplayName = "たろう"
	if err := repo.Update(profile); err != nil {
		t.Fatal(err)
	}

	again, err := repo.GetOrCreate(42)
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != profile.ID {
		t.Error("GetOrCreate created a second row")
	}
	if again.DisplayName != "たろう" {
		t.Errorf("DisplayName = %q, want たろう", again.DisplayName)
	}
}

func TestStudyRecordDeleteScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudyRecordRepository(db)

	record := &model.StudyRecord{UserID: 1, Subject: "英語", Duration: 30, Date: "2024-06-14"}
	if err := repo.Create(record); err != nil {
		t.Fatal(err)
	}

	affected, err := repo.DeleteByIDAndUserID(record.ID, 2)
	if err != nil || affected != 0 {
		t.Errorf("delete as wrong user = %d, %v, want 0 rows", affected, err)
	}

	affected, err = repo.DeleteByIDAndUserID(record.ID, 1)
	if err != nil || affected != 1 {
		t.Errorf("delete as owner = %d, %v, want 1 row", affected, err)
	}
}

func TestFindRecentAllUsersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudyRecordRepository(db)

	for i := 0; i < 5; i++ {
		repo.Create(&model.StudyRecord{UserID: uint(i + 1), Subject: "数学", Duration: 10, Date: "2024-06-14"})
	}

	records, err := repo.FindRecent(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("FindRecent = %d records, want 3", len(records))
	}
	// newest first: the last created user id is 5
	if records[0].UserID != 5 {
		t.Errorf("first record user = %d, want 5", records[0].UserID)
	}
}
