package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/nibble/internal/dates"
	"github.com/terraincognita07/nibble/internal/models"
)

var ErrAnalyticsLoadFailed = errors.New("load analytics failed")

const (
	monthlySeriesBuckets = 4
	rollingWindowDays    = 7
	defaultTrendPoints   = 30
)

type AnalyticsFoodReader interface {
	ByDate(day time.Time) ([]models.FoodEntry, error)
	ByDateRange(start time.Time, end time.Time) ([]models.FoodEntry, error)
}

type AnalyticsWeightReader interface {
	List() ([]models.WeightEntry, error)
}

type AnalyticsSettingsReader interface {
	Load() (models.Settings, error)
}

// SeriesLabeler names chart buckets in the user's language.
type SeriesLabeler interface {
	DayLabel(day time.Time) string
	WeekLabel(index int) string
}

type englishLabeler struct{}

func (englishLabeler) DayLabel(day time.Time) string { return day.Format("Jan 2") }
func (englishLabeler) WeekLabel(index int) string    { return fmt.Sprintf("Week %d", index) }

type PeriodSummary struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	Total        int     `json:"total"`
	ElapsedDays  int     `json:"elapsedDays"`
	DailyAverage float64 `json:"dailyAverage"`
	CalorieGoal  int     `json:"calorieGoal"`
}

type SeriesPoint struct {
	Label    string `json:"label"`
	From     string `json:"from"`
	To       string `json:"to"`
	Calories int    `json:"calories"`
}

type DailySummary struct {
	Date        string `json:"date"`
	Total       int    `json:"total"`
	CalorieGoal int    `json:"calorieGoal"`
	Remaining   int    `json:"remaining"`
	EntryCount  int    `json:"entryCount"`
}

type WeightTrend struct {
	Unit    string               `json:"unit"`
	HasData bool                 `json:"hasData"`
	Latest  *models.WeightEntry  `json:"latest,omitempty"`
	First   *models.WeightEntry  `json:"first,omitempty"`
	Change  float64              `json:"change"`
	Points  []models.WeightEntry `json:"points"`
}

type AnalyticsService struct {
	foods    AnalyticsFoodReader
	weights  AnalyticsWeightReader
	settings AnalyticsSettingsReader
	location *time.Location
	now      func() time.Time
}

func NewAnalyticsService(foods AnalyticsFoodReader, weights AnalyticsWeightReader, settings AnalyticsSettingsReader, location *time.Location) *AnalyticsService {
	if location == nil {
		location = time.Local
	}
	return &AnalyticsService{
		foods:    foods,
		weights:  weights,
		settings: settings,
		location: location,
		now:      time.Now,
	}
}

func (service *AnalyticsService) today() time.Time {
	return service.now().In(service.location)
}

// DailySummary totals today's entries against the calorie goal. Remaining goes negative
// once the goal is exceeded.
func (service *AnalyticsService) DailySummary() (DailySummary, error) {
	today := service.today()
	entries, err := service.foods.ByDate(today)
	if err != nil {
		return DailySummary{}, fmt.Errorf("%w: %v", ErrAnalyticsLoadFailed, err)
	}
	goal, err := service.calorieGoal()
	if err != nil {
		return DailySummary{}, err
	}

	total := sumCalories(entries)
	return DailySummary{
		Date:        dates.FormatISO(today),
		Total:       total,
		CalorieGoal: goal,
		Remaining:   goal - total,
		EntryCount:  len(entries),
	}, nil
}

// WeeklySummary covers the Monday-Sunday week containing today. The average divides by the
// days elapsed so far this week, not by seven.
func (service *AnalyticsService) WeeklySummary() (PeriodSummary, error) {
	today := service.today()
	start := dates.WeekStart(today)
	end := dates.WeekEnd(today)

	entries, err := service.foods.ByDateRange(start, end)
	if err != nil {
		return PeriodSummary{}, fmt.Errorf("%w: %v", ErrAnalyticsLoadFailed, err)
	}
	goal, err := service.calorieGoal()
	if err != nil {
		return PeriodSummary{}, err
	}

	return buildPeriodSummary(start, end, entries, dates.DaysBetween(start, today), goal), nil
}

// MonthlySummary covers the calendar month containing today, averaged over the day of month.
func (service *AnalyticsService) MonthlySummary() (PeriodSummary, error) {
	today := service.today()
	start := dates.MonthStart(today)
	end := dates.MonthEnd(today)

	entries, err := service.foods.ByDateRange(start, end)
	if err != nil {
		return PeriodSummary{}, fmt.Errorf("%w: %v", ErrAnalyticsLoadFailed, err)
	}
	goal, err := service.calorieGoal()
	if err != nil {
		return PeriodSummary{}, err
	}

	return buildPeriodSummary(start, end, entries, today.Day(), goal), nil
}

// WeeklySeries returns one bucket per calendar day of the current week, Monday first.
func (service *AnalyticsService) WeeklySeries(labeler SeriesLabeler) ([]SeriesPoint, error) {
	if labeler == nil {
		labeler = englishLabeler{}
	}
	start := dates.WeekStart(service.today())

	points := make([]SeriesPoint, 0, 7)
	for offset := 0; offset < 7; offset++ {
		day := dates.AddDays(start, offset)
		entries, err := service.foods.ByDate(day)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAnalyticsLoadFailed, err)
		}
		points = append(points, SeriesPoint{
			Label:    labeler.DayLabel(day),
			From:     dates.FormatISO(day),
			To:       dates.FormatISO(day),
			Calories: sumCalories(entries),
		})
	}
	return points, nil
}

// MonthlySeries returns four trailing seven-day windows ending today, oldest first.
// The windows roll with today and do not align to calendar weeks.
func (service *AnalyticsService) MonthlySeries(labeler SeriesLabeler) ([]SeriesPoint, error) {
	if labeler == nil {
		labeler = englishLabeler{}
	}
	today := service.today()

	points := make([]SeriesPoint, 0, monthlySeriesBuckets)
	for bucket := 0; bucket < monthlySeriesBuckets; bucket++ {
		end := dates.AddDays(today, -rollingWindowDays*(monthlySeriesBuckets-1-bucket))
		start := dates.AddDays(end, -(rollingWindowDays - 1))

		entries, err := service.foods.ByDateRange(start, end)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAnalyticsLoadFailed, err)
		}
		points = append(points, SeriesPoint{
			Label:    labeler.WeekLabel(bucket + 1),
			From:     dates.FormatISO(start),
			To:       dates.FormatISO(end),
			Calories: sumCalories(entries),
		})
	}
	return points, nil
}

// WeightTrend reports the change between the first and latest entries and the last
// maxPoints entries for charting. maxPoints <= 0 uses a default.
func (service *AnalyticsService) WeightTrend(maxPoints int) (WeightTrend, error) {
	if maxPoints <= 0 {
		maxPoints = defaultTrendPoints
	}
	entries, err := service.weights.List()
	if err != nil {
		return WeightTrend{}, fmt.Errorf("%w: %v", ErrAnalyticsLoadFailed, err)
	}
	settings, err := service.settings.Load()
	if err != nil {
		return WeightTrend{}, fmt.Errorf("%w: %v", ErrAnalyticsLoadFailed, err)
	}

	trend := WeightTrend{
		Unit:   settings.WeightUnit,
		Points: make([]models.WeightEntry, 0),
	}
	if len(entries) == 0 {
		return trend, nil
	}

	first := entries[0]
	latest := entries[len(entries)-1]
	trend.HasData = true
	trend.First = &first
	trend.Latest = &latest
	trend.Change = latest.Weight - first.Weight

	if len(entries) > maxPoints {
		entries = entries[len(entries)-maxPoints:]
	}
	trend.Points = append(trend.Points, entries...)
	return trend, nil
}

func (service *AnalyticsService) calorieGoal() (int, error) {
	settings, err := service.settings.Load()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAnalyticsLoadFailed, err)
	}
	return settings.CalorieGoal, nil
}

func buildPeriodSummary(start time.Time, end time.Time, entries []models.FoodEntry, elapsedDays int, goal int) PeriodSummary {
	total := sumCalories(entries)
	summary := PeriodSummary{
		From:        dates.FormatISO(start),
		To:          dates.FormatISO(end),
		Total:       total,
		ElapsedDays: elapsedDays,
		CalorieGoal: goal,
	}
	if elapsedDays > 0 {
		summary.DailyAverage = float64(total) / float64(elapsedDays)
	}
	return summary
}

func sumCalories(entries []models.FoodEntry) int {
	total := 0
	for _, entry := range entries {
		total += entry.Calories
	}
	return total
}
