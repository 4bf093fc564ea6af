package service

import (
	"math/rand"
	"testing"
	"time"

	"studylog_backend/internal/model"
)

// fixed reference time: Friday 2024-06-14, so the ISO week runs Mon
// 2024-06-10 through Sun 2024-06-16.
var statsNow = time.Date(2024, 6, 14, 18, 30, 0, 0, time.Local)

func rec(date string, minutes int) model.StudyRecord {
	return model.StudyRecord{UserID: 1, Subject: "数学", Duration: minutes, Date: date}
}

func TestSummarizeTodayMinutes(t *testing.T) {
	records := []model.StudyRecord{
		rec("2024-06-14", 30),
		rec("2024-06-14 09:00", 45),
		rec("2024-06-13", 60), // yesterday
	}

	s := Summarize(records, statsNow, time.Local)
	if s.TodayMinutes != 75 {
		t.Errorf("TodayMinutes = %d, want 75", s.TodayMinutes)
	}
}

func TestSummarizeAverageHoursFloors(t *testing.T) {
	// 13 hours over the window: 13*60/7/60 = 1.857 -> 1
	records := []model.StudyRecord{
		rec("2024-06-12", 13*60),
	}

	s := Summarize(records, statsNow, time.Local)
	if s.Last7DaysMinutes != 13*60 {
		t.Errorf("Last7DaysMinutes = %d, want %d", s.Last7DaysMinutes, 13*60)
	}
	if s.AverageHours != 1 {
		t.Errorf("AverageHours = %d, want 1", s.AverageHours)
	}
}

func TestSummarizeWeeklyPercent(t *testing.T) {
	// Mon, Wed, Fri of the current week: 3/7 rounds to 43.
	records := []model.StudyRecord{
		rec("2024-06-10", 30),
		rec("2024-06-12", 30),
		rec("2024-06-14", 30),
		rec("2024-06-14 20:00", 30), // same day counted once
	}

	s := Summarize(records, statsNow, time.Local)
	if s.DaysWithRecords != 3 {
		t.Errorf("DaysWithRecords = %d, want 3", s.DaysWithRecords)
	}
	if s.WeeklyPercent != 43 {
		t.Errorf("WeeklyPercent = %d, want 43", s.WeeklyPercent)
	}
}

func TestSummarizeExcludesOtherWeeks(t *testing.T) {
	records := []model.StudyRecord{
		rec("2024-06-09", 120), // Sunday of the previous week
		rec("2024-06-10", 60),  // Monday, in range
		rec("2024-06-17", 60),  // next Monday, out of range
	}

	s := Summarize(records, statsNow, time.Local)
	if s.WeekMinutes != 60 {
		t.Errorf("WeekMinutes = %d, want 60", s.WeekMinutes)
	}
}

func TestSummarizeMalformedDatesExcluded(t *testing.T) {
	records := []model.StudyRecord{
		rec("not-a-date", 999),
		rec("", 999),
		rec("2024-06-14", 30),
	}

	s := Summarize(records, statsNow, time.Local)
	if s.TodayMinutes != 30 {
		t.Errorf("TodayMinutes = %d, want 30", s.TodayMinutes)
	}
	if s.WeekMinutes != 30 {
		t.Errorf("WeekMinutes = %d, want 30", s.WeekMinutes)
	}
	if s.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, want 3", s.TotalRecords)
	}
}

func TestSummarizeJapaneseDateLayout(t *testing.T) {
	records := []model.StudyRecord{
		rec("2024年06月14日", 20),
		rec("2024年06月14日 07:30", 25),
	}

	s := Summarize(records, statsNow, time.Local)
	if s.TodayMinutes != 45 {
		t.Errorf("TodayMinutes = %d, want 45", s.TodayMinutes)
	}
}

func TestSummarizeOrderInvariant(t *testing.T) {
	records := []model.StudyRecord{
		rec("2024-06-10", 30),
		rec("2024-06-12", 45),
		rec("2024-06-14", 60),
		rec("2024-06-08", 90),
		rec("invalid", 10),
	}

	want := Summarize(records, statsNow, time.Local)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]model.StudyRecord, len(records))
		copy(shuffled, records)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		if got := Summarize(shuffled, statsNow, time.Local); got != want {
			t.Fatalf("summary changed under reorder: got %+v, want %+v", got, want)
		}
	}
}

func TestStartOfISOWeekSunday(t *testing.T) {
	sunday := time.Date(2024, 6, 16, 12, 0, 0, 0, time.Local)
	got := startOfISOWeek(sunday)
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("startOfISOWeek(Sunday) = %v, want %v", got, want)
	}
}

func TestMonthlyCalendar(t *testing.T) {
	records := []model.StudyRecord{
		rec("2024-06-01", 30),
		rec("2024-06-01 21:00", 15),
		rec("2024-06-20", 60),
		rec("2024-05-31", 120),
		rec("garbage", 50),
	}

	calendar := MonthlyCalendar(records, 2024, time.June, time.Local)
	if len(calendar) != 2 {
		t.Fatalf("calendar has %d days, want 2", len(calendar))
	}
	if calendar["2024-06-01"] != 45 {
		t.Errorf("2024-06-01 = %d, want 45", calendar["2024-06-01"])
	}
	if calendar["2024-06-20"] != 60 {
		t.Errorf("2024-06-20 = %d, want 60", calendar["2024-06-20"])
	}
}

func TestParseRecordDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-06-14", true},
		{"2024-06-14 09:30", true},
		{"2024-06-14T09:30:00+09:00", true},
		{"2024年06月14日", true},
		{"2024年06月14日 09:30", true},
		{"not-a-date", false},
		{"", false},
		{"14/06/2024", false},
	}
	for _, c := range cases {
		if _, ok := ParseRecordDate(c.in, time.Local); ok != c.ok {
			t.Errorf("ParseRecordDate(%q) ok = %v, want %v", c.in, ok, c.ok)
		}
	}
}
