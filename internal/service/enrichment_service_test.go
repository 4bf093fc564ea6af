package service

import (
	"context"
	"testing"

	"studylog_backend/internal/model"
	"studylog_backend/internal/repository"
)

type countingMaterialLookup struct {
	calls  int
	images map[string]string
}

func (l *countingMaterialLookup) ImagesByName(ctx context.Context, names []string) (map[string]string, error) {
	l.calls++
	out := make(map[string]string)
	for _, n := range names {
		if img, ok := l.images[n]; ok {
			out[n] = img
		}
	}
	return out, nil
}

type countingProfileLookup struct {
	calls    int
	displays map[uint]repository.ProfileDisplay
}

func (l *countingProfileLookup) DisplayByID(ctx context.Context, userIDs []uint) (map[uint]repository.ProfileDisplay, error) {
	l.calls++
	out := make(map[uint]repository.ProfileDisplay)
	for _, id := range userIDs {
		if d, ok := l.displays[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}

func TestEnrichFeedTwoLookupsForAnyBatch(t *testing.T) {
	materials := &countingMaterialLookup{images: map[string]string{"英語": "https://img/eigo.png"}}
	profiles := &countingProfileLookup{displays: map[uint]repository.ProfileDisplay{
		1: {DisplayName: "たろう", AvatarURL: "https://img/taro.png"},
	}}
	svc := NewEnrichmentService(materials, profiles)

	records := make([]model.StudyRecord, 50)
	for i := range records {
		records[i] = model.StudyRecord{UserID: uint(i%5 + 1), Subject: "英語"}
	}
	goals := []model.Goal{{UserID: 1, Title: "長文読解"}, {UserID: 9, Title: "単語"}}

	_, _, err := svc.EnrichFeed(context.Background(), records, goals)
	if err != nil {
		t.Fatal(err)
	}

	if materials.calls != 1 {
		t.Errorf("material lookups = %d, want 1", materials.calls)
	}
	if profiles.calls != 1 {
		t.Errorf("profile lookups = %d, want 1", profiles.calls)
	}
}

func TestEnrichFeedEmptyBatchNoLookups(t *testing.T) {
	materials := &countingMaterialLookup{}
	profiles := &countingProfileLookup{}
	svc := NewEnrichmentService(materials, profiles)

	records, goals, err := svc.EnrichFeed(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if materials.calls != 0 || profiles.calls != 0 {
		t.Errorf("lookups = %d/%d, want 0/0", materials.calls, profiles.calls)
	}
	if len(records) != 0 || len(goals) != 0 {
		t.Errorf("got %d records, %d goals, want empty", len(records), len(goals))
	}
}

func TestEnrichFeedAttachesMetadata(t *testing.T) {
	materials := &countingMaterialLookup{images: map[string]string{"英語": "https://img/eigo.png"}}
	profiles := &countingProfileLookup{displays: map[uint]repository.ProfileDisplay{
		1: {DisplayName: "たろう"},
	}}
	svc := NewEnrichmentService(materials, profiles)

	records := []model.StudyRecord{
		{UserID: 1, Subject: "英語"},
		{UserID: 2, Subject: "数学"}, // no material, no profile
	}

	enriched, _, err := svc.EnrichFeed(context.Background(), records, nil)
	if err != nil {
		t.Fatal(err)
	}

	if enriched[0].MaterialImage == nil || *enriched[0].MaterialImage != "https://img/eigo.png" {
		t.Errorf("record 0 material image = %v, want eigo.png", enriched[0].MaterialImage)
	}
	if enriched[0].UserDisplayName == nil || *enriched[0].UserDisplayName != "たろう" {
		t.Errorf("record 0 display name = %v, want たろう", enriched[0].UserDisplayName)
	}
	if enriched[0].UserAvatarURL != nil {
		t.Errorf("record 0 avatar = %v, want nil (empty in profile)", enriched[0].UserAvatarURL)
	}

	if enriched[1].MaterialImage != nil {
		t.Errorf("record 1 material image = %v, want nil", enriched[1].MaterialImage)
	}
	if enriched[1].UserDisplayName != nil {
		t.Errorf("record 1 display name = %v, want nil", enriched[1].UserDisplayName)
	}
}

func TestEnrichFeedSharesProfileLookupWithGoals(t *testing.T) {
	materials := &countingMaterialLookup{}
	profiles := &countingProfileLookup{displays: map[uint]repository.ProfileDisplay{
		7: {DisplayName: "はなこ"},
	}}
	svc := NewEnrichmentService(materials, profiles)

	goals := []model.Goal{{UserID: 7, Title: "過去問3年分"}}

	_, enrichedGoals, err := svc.EnrichFeed(context.Background(), nil, goals)
	if err != nil {
		t.Fatal(err)
	}

	// no records means no subjects, so the material lookup is skipped
	if materials.calls != 0 {
		t.Errorf("material lookups = %d, want 0", materials.calls)
	}
	if profiles.calls != 1 {
		t.Errorf("profile lookups = %d, want 1", profiles.calls)
	}
	if enrichedGoals[0].UserDisplayName == nil || *enrichedGoals[0].UserDisplayName != "はなこ" {
		t.Errorf("goal display name = %v, want はなこ", enrichedGoals[0].UserDisplayName)
	}
}
