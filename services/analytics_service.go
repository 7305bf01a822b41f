package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/marcus-bailey/nom-nom-tracker/models"
	"github.com/marcus-bailey/nom-nom-tracker/utils"

	"gorm.io/gorm"
)

type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

// DayTotals is one grouped row: everything logged on LogDate, summed.
type DayTotals struct {
	LogDate  string  `json:"log_date"`
	Entries  int64   `json:"entries"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	NetCarbs float64 `json:"net_carbs"`
	Fat      float64 `json:"fat"`
}

func (d DayTotals) add(o DayTotals) DayTotals {
	d.Entries += o.Entries
	d.Calories += o.Calories
	d.Protein += o.Protein
	d.NetCarbs += o.NetCarbs
	d.Fat += o.Fat
	return d
}

func (d DayTotals) percentages() utils.MacroPercentages {
	return utils.Percentages(d.Protein, d.NetCarbs, d.Fat, d.Calories)
}

// ---------- Daily ----------

type DailySummary struct {
	Date          string  `json:"date"`
	TotalEntries  int64   `json:"total_entries"`
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalNetCarbs float64 `json:"total_net_carbs"`
	TotalFat      float64 `json:"total_fat"`
	utils.MacroPercentages
}

// BuildDailySummary sums rows (normally zero or one) for a single date.
func BuildDailySummary(date string, rows []DayTotals) DailySummary {
	t := sumRows(rows)
	return DailySummary{
		Date:             date,
		TotalEntries:     t.Entries,
		TotalCalories:    utils.Round2(t.Calories),
		TotalProtein:     utils.Round2(t.Protein),
		TotalNetCarbs:    utils.Round2(t.NetCarbs),
		TotalFat:         utils.Round2(t.Fat),
		MacroPercentages: t.percentages(),
	}
}

func (s *AnalyticsService) Daily(ctx context.Context, date string) (*DailySummary, error) {
	if _, err := utils.ParseCalendarDate(date); err != nil {
		return nil, invalidf("%v", err)
	}
	rows, err := s.SumByDate(ctx, date, date)
	if err != nil {
		return nil, err
	}
	out := BuildDailySummary(date, rows)
	return &out, nil
}

// ---------- Weekly ----------

// DayBreakdown is one day inside a weekly or range summary. Its percentages
// are computed against that day's own calories.
type DayBreakdown struct {
	Date     string  `json:"date"`
	Entries  int64   `json:"entries"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	NetCarbs float64 `json:"net_carbs"`
	Fat      float64 `json:"fat"`
	utils.MacroPercentages
}

type WeeklySummary struct {
	WeekStart     string  `json:"week_start"`
	WeekEnd       string  `json:"week_end"`
	TotalEntries  int64   `json:"total_entries"`
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalNetCarbs float64 `json:"total_net_carbs"`
	TotalFat      float64 `json:"total_fat"`
	utils.MacroPercentages
	DailyBreakdown []DayBreakdown `json:"daily_breakdown"`
}

// BuildWeeklySummary totals the week starting at weekStart and lists the
// days that have entries in ascending order.
func BuildWeeklySummary(weekStart string, rows []DayTotals) (WeeklySummary, error) {
	weekEnd, err := utils.AddDays(weekStart, 6)
	if err != nil {
		return WeeklySummary{}, invalidf("%v", err)
	}
	t := sumRows(rows)
	return WeeklySummary{
		WeekStart:        weekStart,
		WeekEnd:          weekEnd,
		TotalEntries:     t.Entries,
		TotalCalories:    utils.Round2(t.Calories),
		TotalProtein:     utils.Round2(t.Protein),
		TotalNetCarbs:    utils.Round2(t.NetCarbs),
		TotalFat:         utils.Round2(t.Fat),
		MacroPercentages: t.percentages(),
		DailyBreakdown:   breakdown(rows),
	}, nil
}

func (s *AnalyticsService) Weekly(ctx context.Context, weekStart string) (*WeeklySummary, error) {
	weekEnd, err := utils.AddDays(weekStart, 6)
	if err != nil {
		return nil, invalidf("%v", err)
	}
	rows, err := s.SumByDate(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	out, err := BuildWeeklySummary(weekStart, rows)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- Range ----------

type PeriodTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	NetCarbs float64 `json:"net_carbs"`
	Fat      float64 `json:"fat"`
	Entries  int64   `json:"entries"`
}

type PeriodAverages struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	NetCarbs float64 `json:"net_carbs"`
	Fat      float64 `json:"fat"`
}

type RangeSummary struct {
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	DaysCount int            `json:"days_count"`
	Totals    PeriodTotals   `json:"totals"`
	Averages  PeriodAverages `json:"averages"`
	DailyData []DayBreakdown `json:"daily_data"`
}

// BuildRangeSummary averages over the days that have data, not over the
// calendar length of the range.
func BuildRangeSummary(start, end string, rows []DayTotals) RangeSummary {
	t := sumRows(rows)
	days := len(rows)
	return RangeSummary{
		StartDate: start,
		EndDate:   end,
		DaysCount: days,
		Totals: PeriodTotals{
			Calories: utils.Round2(t.Calories),
			Protein:  utils.Round2(t.Protein),
			NetCarbs: utils.Round2(t.NetCarbs),
			Fat:      utils.Round2(t.Fat),
			Entries:  t.Entries,
		},
		Averages: PeriodAverages{
			Calories: avg(t.Calories, days),
			Protein:  avg(t.Protein, days),
			NetCarbs: avg(t.NetCarbs, days),
			Fat:      avg(t.Fat, days),
		},
		DailyData: breakdown(rows),
	}
}

func (s *AnalyticsService) Range(ctx context.Context, start, end string) (*RangeSummary, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	rows, err := s.SumByDate(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := BuildRangeSummary(start, end, rows)
	return &out, nil
}

// ---------- grouping ----------

// SumByDate runs the grouped aggregate over [from, to], one row per date
// that has entries, ascending.
func (s *AnalyticsService) SumByDate(ctx context.Context, from, to string) ([]DayTotals, error) {
	var rows []DayTotals
	err := s.db.WithContext(ctx).
		Model(&models.FoodLog{}).
		Select(`log_date,
			COUNT(*) AS entries,
			SUM(calories) AS calories,
			SUM(protein_grams) AS protein,
			SUM(net_carbs_grams) AS net_carbs,
			SUM(fat_grams) AS fat`).
		Where("log_date >= ? AND log_date <= ?", from, to).
		Group("log_date").
		Order("log_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sum logs %s..%s: %w", from, to, err)
	}
	return rows, nil
}

// GroupByDate does in memory what SumByDate does in the database.
func GroupByDate(logs []models.FoodLog) []DayTotals {
	idx := map[string]DayTotals{}
	for _, l := range logs {
		idx[l.LogDate] = idx[l.LogDate].add(DayTotals{
			Entries:  1,
			Calories: l.Calories,
			Protein:  l.ProteinGrams,
			NetCarbs: l.NetCarbsGrams,
			Fat:      l.FatGrams,
		})
	}
	out := make([]DayTotals, 0, len(idx))
	for date, d := range idx {
		d.LogDate = date
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LogDate < out[j].LogDate })
	return out
}

func sumRows(rows []DayTotals) DayTotals {
	var t DayTotals
	for _, r := range rows {
		t = t.add(r)
	}
	return t
}

func breakdown(rows []DayTotals) []DayBreakdown {
	sorted := make([]DayTotals, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].LogDate < sorted[j].LogDate })

	out := make([]DayBreakdown, 0, len(sorted))
	for _, d := range sorted {
		out = append(out, DayBreakdown{
			Date:             d.LogDate,
			Entries:          d.Entries,
			Calories:         utils.Round2(d.Calories),
			Protein:          utils.Round2(d.Protein),
			NetCarbs:         utils.Round2(d.NetCarbs),
			Fat:              utils.Round2(d.Fat),
			MacroPercentages: d.percentages(),
		})
	}
	return out
}

func checkRange(start, end string) error {
	if _, err := utils.ParseCalendarDate(start); err != nil {
		return invalidf("%v", err)
	}
	if _, err := utils.ParseCalendarDate(end); err != nil {
		return invalidf("%v", err)
	}
	if end < start {
		return invalidf("end date must be on or after start date")
	}
	return nil
}

func avg(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return utils.Round2(sum / float64(n))
}
