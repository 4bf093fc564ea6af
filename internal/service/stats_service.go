package service

import (
	"context"
	"math"
	"time"

	"studylog_backend/internal/model"
	"studylog_backend/internal/repository"
)

// recordDateLayouts are the accepted shapes of the free-form record date
// string. Older clients wrote the Japanese long form, newer ones ISO.
var recordDateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006年01月02日 15:04",
	"2006年01月02日",
}

// ParseRecordDate parses a record's date string. Malformed strings return
// ok=false and are excluded from every aggregate rather than failing the
// whole report.
func ParseRecordDate(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range recordDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StudySummary is the headline report for a single user.
type StudySummary struct {
	TodayMinutes     int `json:"todayMinutes"`
	Last7DaysMinutes int `json:"last7DaysMinutes"`
	AverageHours     int `json:"averageHours"`
	WeekMinutes      int `json:"weekMinutes"`
	WeekHours        int `json:"weekHours"`
	DaysWithRecords  int `json:"daysWithRecords"`
	WeeklyPercent    int `json:"weeklyPercent"`
	TotalRecords     int `json:"totalRecords"`
}

type StatsService struct {
	records *repository.StudyRecordRepository
	loc     *time.Location
}

func NewStatsService(records *repository.StudyRecordRepository) *StatsService {
	return &StatsService{records: records, loc: time.Local}
}

func (s *StatsService) GetSummary(ctx context.Context, userID uint, now time.Time) (*StudySummary, error) {
	records, err := s.records.FindAllByUserID(userID)
	if err != nil {
		return nil, err
	}
	summary := Summarize(records, now.In(s.loc), s.loc)
	return &summary, nil
}

// Summarize reduces a user's records into the headline numbers. The
// reduction is a pure fold over the slice, so record order never changes
// the result.
func Summarize(records []model.StudyRecord, now time.Time, loc *time.Location) StudySummary {
	today := dayKey(now)
	weekStart := startOfISOWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)
	last7Start := dayStart(now, loc).AddDate(0, 0, -6)

	var summary StudySummary
	weekDays := make(map[string]bool)
	summary.TotalRecords = len(records)

	for _, r := range records {
		t, ok := ParseRecordDate(r.Date, loc)
		if !ok {
			continue
		}
		key := dayKey(t)
		if key == today {
			summary.TodayMinutes += r.Duration
		}
		if !t.Before(last7Start) && t.Before(dayStart(now, loc).AddDate(0, 0, 1)) {
			summary.Last7DaysMinutes += r.Duration
		}
		if !t.Before(weekStart) && t.Before(weekEnd) {
			summary.WeekMinutes += r.Duration
			weekDays[key] = true
		}
	}

	summary.AverageHours = summary.Last7DaysMinutes / 7 / 60
	summary.WeekHours = summary.WeekMinutes / 60
	summary.DaysWithRecords = len(weekDays)
	summary.WeeklyPercent = int(math.Round(float64(summary.DaysWithRecords) / 7 * 100))
	return summary
}

// GetCalendar returns per-day minute totals for one month, keyed by
// YYYY-MM-DD. Days without records are absent from the map.
func (s *StatsService) GetCalendar(ctx context.Context, userID uint, year int, month time.Month) (map[string]int, error) {
	records, err := s.records.FindAllByUserID(userID)
	if err != nil {
		return nil, err
	}
	return MonthlyCalendar(records, year, month, s.loc), nil
}

func MonthlyCalendar(records []model.StudyRecord, year int, month time.Month, loc *time.Location) map[string]int {
	totals := make(map[string]int)
	for _, r := range records {
		t, ok := ParseRecordDate(r.Date, loc)
		if !ok {
			continue
		}
		if t.Year() != year || t.Month() != month {
			continue
		}
		totals[dayKey(t)] += r.Duration
	}
	return totals
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// startOfISOWeek returns midnight on the Monday of t's week. Sunday
// belongs to the week that started six days earlier.
func startOfISOWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return dayStart(t, t.Location()).AddDate(0, 0, -offset)
}
