package service

import (
	"context"
	"testing"

	"studylog_backend/internal/config"
	"studylog_backend/internal/model"
	"studylog_backend/internal/repository"

	"gorm.io/gorm"
)

func newFeedService(db *gorm.DB) *FeedService {
	records := repository.NewStudyRecordRepository(db)
	goals := repository.NewGoalRepository(db)
	follows := repository.NewFollowRepository(db, nil)
	enricher := NewEnrichmentService(repository.NewMaterialRepository(db), repository.NewProfileRepository(db))
	return NewFeedService(records, goals, follows, enricher, config.FeedConfig{RecordLimit: 50, GoalLimit: 20})
}

func TestFilterByAudience(t *testing.T) {
	records := []model.StudyRecord{
		{UserID: 1}, {UserID: 2}, {UserID: 3}, {UserID: 1},
	}

	// viewer 1 follows 2: keeps own records and 2's, drops 3
	filtered := FilterByAudience(records, 1, []uint{2})
	if len(filtered) != 3 {
		t.Fatalf("filtered records = %d, want 3", len(filtered))
	}

	// order preserved
	if filtered[0].UserID != 1 || filtered[1].UserID != 2 || filtered[2].UserID != 1 {
		t.Errorf("record order changed: %v", filtered)
	}
}

func TestFilterByAudienceEmptyFollowedBypasses(t *testing.T) {
	records := []model.StudyRecord{{UserID: 1}, {UserID: 2}, {UserID: 3}}

	filtered := FilterByAudience(records, 1, nil)
	if len(filtered) != 3 {
		t.Errorf("empty followed set must bypass the filter, got %d", len(filtered))
	}
}

func TestGetFeedGuestSeesEverything(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	db.Create(&model.StudyRecord{UserID: alice.ID, Subject: "英語", Duration: 30, Date: "2024-06-14"})
	db.Create(&model.StudyRecord{UserID: bob.ID, Subject: "数学", Duration: 45, Date: "2024-06-14"})

	svc := newFeedService(db)
	feed, err := svc.GetFeed(context.Background(), nil, FeedTabActivity)
	if err != nil {
		t.Fatal(err)
	}

	if len(feed.Records) != 2 {
		t.Errorf("guest feed records = %d, want 2", len(feed.Records))
	}
}

func TestGetFeedFiltersToFollowed(t *testing.T) {
	db := setupTestDB(t)
	viewer := createUser(t, db, "viewer@example.com")
	followed := createUser(t, db, "followed@example.com")
	stranger := createUser(t, db, "stranger@example.com")

	db.Create(&model.StudyRecord{UserID: viewer.ID, Subject: "英語", Duration: 30, Date: "2024-06-14"})
	db.Create(&model.StudyRecord{UserID: followed.ID, Subject: "数学", Duration: 45, Date: "2024-06-14"})
	db.Create(&model.StudyRecord{UserID: stranger.ID, Subject: "理科", Duration: 60, Date: "2024-06-14"})
	db.Create(&model.Follow{FollowerID: viewer.ID, FollowingID: followed.ID})

	svc := newFeedService(db)
	feed, err := svc.GetFeed(context.Background(), &viewer.ID, FeedTabActivity)
	if err != nil {
		t.Fatal(err)
	}

	if len(feed.Records) != 2 {
		t.Fatalf("feed records = %d, want 2 (own + followed)", len(feed.Records))
	}
	for _, r := range feed.Records {
		if r.UserID == stranger.ID {
			t.Errorf("stranger's record leaked into the feed")
		}
	}
}

func TestGetFeedColdStartShowsAll(t *testing.T) {
	db := setupTestDB(t)
	viewer := createUser(t, db, "viewer@example.com")
	other := createUser(t, db, "other@example.com")

	db.Create(&model.StudyRecord{UserID: other.ID, Subject: "英語", Duration: 30, Date: "2024-06-14"})

	svc := newFeedService(db)
	feed, err := svc.GetFeed(context.Background(), &viewer.ID, FeedTabActivity)
	if err != nil {
		t.Fatal(err)
	}

	// a viewer who follows nobody still gets a populated feed
	if len(feed.Records) != 1 {
		t.Errorf("cold-start feed records = %d, want 1", len(feed.Records))
	}
}

func TestGetFeedGoalsTabUnfiltered(t *testing.T) {
	db := setupTestDB(t)
	viewer := createUser(t, db, "viewer@example.com")
	followed := createUser(t, db, "followed@example.com")
	stranger := createUser(t, db, "stranger@example.com")

	db.Create(&model.Goal{UserID: followed.ID, Title: "模試A判定"})
	db.Create(&model.Goal{UserID: stranger.ID, Title: "単語帳1冊"})
	db.Create(&model.Follow{FollowerID: viewer.ID, FollowingID: followed.ID})
	db.Create(&model.StudyRecord{UserID: stranger.ID, Subject: "理科", Duration: 60, Date: "2024-06-14"})

	svc := newFeedService(db)
	feed, err := svc.GetFeed(context.Background(), &viewer.ID, FeedTabGoals)
	if err != nil {
		t.Fatal(err)
	}

	// everyone's goals, regardless of follows; no records on this tab
	if len(feed.Goals) != 2 {
		t.Errorf("goals tab = %d goals, want 2", len(feed.Goals))
	}
	if len(feed.Records) != 0 {
		t.Errorf("goals tab carried %d records, want 0", len(feed.Records))
	}
}

func TestGetFeedEnrichesFromMaterialsAndProfiles(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "user@example.com")

	db.Create(&model.Profile{UserID: user.ID, DisplayName: "たろう"})
	db.Create(&model.Material{UserID: user.ID, Name: "英語長文", Image: "https://img/choubun.png"})
	db.Create(&model.StudyRecord{UserID: user.ID, Subject: "英語長文", Duration: 30, Date: "2024-06-14"})
	db.Create(&model.StudyRecord{UserID: user.ID, Subject: "英語長文 ", Duration: 30, Date: "2024-06-14"})

	svc := newFeedService(db)
	feed, err := svc.GetFeed(context.Background(), nil, FeedTabActivity)
	if err != nil {
		t.Fatal(err)
	}
	if len(feed.Records) != 2 {
		t.Fatalf("feed records = %d, want 2", len(feed.Records))
	}

	for _, r := range feed.Records {
		switch r.Subject {
		case "英語長文":
			if r.MaterialImage == nil || *r.MaterialImage != "https://img/choubun.png" {
				t.Errorf("exact subject match missing material image: %v", r.MaterialImage)
			}
			if r.UserDisplayName == nil || *r.UserDisplayName != "たろう" {
				t.Errorf("display name = %v, want たろう", r.UserDisplayName)
			}
		case "英語長文 ":
			// trailing space must not match the material name
			if r.MaterialImage != nil {
				t.Errorf("trailing-space subject matched a material: %v", *r.MaterialImage)
			}
		}
	}
}

func TestGetFeedRespectsLimits(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "user@example.com")

	for i := 0; i < 60; i++ {
		db.Create(&model.StudyRecord{UserID: user.ID, Subject: "数学", Duration: 10, Date: "2024-06-14"})
	}
	for i := 0; i < 30; i++ {
		db.Create(&model.Goal{UserID: user.ID, Title: "目標"})
	}

	svc := newFeedService(db)

	feed, err := svc.GetFeed(context.Background(), nil, FeedTabActivity)
	if err != nil {
		t.Fatal(err)
	}
	if len(feed.Records) != 50 {
		t.Errorf("feed records = %d, want 50", len(feed.Records))
	}

	feed, err = svc.GetFeed(context.Background(), nil, FeedTabGoals)
	if err != nil {
		t.Fatal(err)
	}
	if len(feed.Goals) != 20 {
		t.Errorf("feed goals = %d, want 20", len(feed.Goals))
	}
}
