package service

import (
	"context"
	"testing"

	"studylog_backend/internal/repository"
	"studylog_backend/internal/util"

	"gorm.io/gorm"
)

func newProfileService(db *gorm.DB) *ProfileService {
	return NewProfileService(
		repository.NewProfileRepository(db),
		repository.NewTargetSchoolRepository(db),
		repository.NewFollowRepository(db, nil),
		repository.NewStudyRecordRepository(db),
		nil,
	)
}

func newFollowService(db *gorm.DB) *FollowService {
	return NewFollowService(
		repository.NewFollowRepository(db, nil),
		repository.NewProfileRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestTargetSchoolCap(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "user@example.com")
	svc := newProfileService(db)
	ctx := context.Background()

	for i := 0; i < maxTargetSchools; i++ {
		if _, err := svc.AddTargetSchool(ctx, user.ID, "第一志望大学", "工学部"); err != nil {
			t.Fatalf("add school %d: %v", i, err)
		}
	}

	if _, err := svc.AddTargetSchool(ctx, user.ID, "もう一校", ""); err != util.ErrTargetSchoolLimit {
		t.Errorf("seventh school = %v, want ErrTargetSchoolLimit", err)
	}

	schools, err := svc.ListTargetSchools(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(schools) != maxTargetSchools {
		t.Errorf("schools = %d, want %d", len(schools), maxTargetSchools)
	}
}

func TestFollowRejectsSelfAndDuplicates(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	svc := newFollowService(db)
	ctx := context.Background()

	if err := svc.Follow(ctx, alice.ID, alice.ID); err != util.ErrSelfFollow {
		t.Errorf("self follow = %v, want ErrSelfFollow", err)
	}

	if err := svc.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if err := svc.Follow(ctx, alice.ID, bob.ID); err != util.ErrAlreadyFollowing {
		t.Errorf("duplicate follow = %v, want ErrAlreadyFollowing", err)
	}

	if err := svc.Follow(ctx, alice.ID, 9999); err != util.ErrUserNotFound {
		t.Errorf("follow of missing user = %v, want ErrUserNotFound", err)
	}
}

func TestUnfollowMissingEdge(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	svc := newFollowService(db)

	if err := svc.Unfollow(context.Background(), alice.ID, bob.ID); err != util.ErrUserNotFound {
		t.Errorf("unfollow without edge = %v, want ErrUserNotFound", err)
	}
}

func TestGetUserPageCounts(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	carol := createUser(t, db, "carol@example.com")

	profiles := newProfileService(db)
	follows := newFollowService(db)
	ctx := context.Background()

	if _, err := profiles.GetOwn(ctx, alice.ID); err != nil {
		t.Fatal(err)
	}
	if err := follows.Follow(ctx, bob.ID, alice.ID); err != nil {
		t.Fatal(err)
	}
	if err := follows.Follow(ctx, carol.ID, alice.ID); err != nil {
		t.Fatal(err)
	}
	if err := follows.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatal(err)
	}

	page, err := profiles.GetUserPage(ctx, alice.ID, &bob.ID)
	if err != nil {
		t.Fatal(err)
	}
	if page.Followers != 2 {
		t.Errorf("Followers = %d, want 2", page.Followers)
	}
	if page.Following != 1 {
		t.Errorf("Following = %d, want 1", page.Following)
	}
	if !page.IsFollowing {
		t.Error("IsFollowing = false, want true (bob follows alice)")
	}

	guest, err := profiles.GetUserPage(ctx, alice.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if guest.IsFollowing {
		t.Error("guest view must not report following")
	}
}

func TestGetUserPageMissingUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newProfileService(db)

	if _, err := svc.GetUserPage(context.Background(), 9999, nil); err != util.ErrUserNotFound {
		t.Errorf("missing user page = %v, want ErrUserNotFound", err)
	}
}
