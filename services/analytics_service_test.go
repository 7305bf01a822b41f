package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/marcus-bailey/nom-nom-tracker/models"
	"github.com/marcus-bailey/nom-nom-tracker/utils"
)

func TestBuildDailySummaryEmpty(t *testing.T) {
	got := BuildDailySummary("2024-01-15", nil)
	want := DailySummary{
		Date:             "2024-01-15",
		MacroPercentages: utils.MacroPercentages{ProteinPercentage: "0", CarbsPercentage: "0", FatPercentage: "0"},
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestBuildDailySummary(t *testing.T) {
	got := BuildDailySummary("2024-01-15", []DayTotals{
		{LogDate: "2024-01-15", Entries: 2, Calories: 165, Protein: 31, NetCarbs: 0, Fat: 3.6},
	})
	if got.TotalEntries != 2 || got.TotalCalories != 165 {
		t.Errorf("totals = %+v", got)
	}
	want := utils.MacroPercentages{ProteinPercentage: "75.2", CarbsPercentage: "0.0", FatPercentage: "19.6"}
	if got.MacroPercentages != want {
		t.Errorf("percentages = %+v, want %+v", got.MacroPercentages, want)
	}
}

func TestBuildWeeklySummary(t *testing.T) {
	rows := []DayTotals{
		{LogDate: "2024-01-17", Entries: 1, Calories: 400, Protein: 40, NetCarbs: 30, Fat: 10},
		{LogDate: "2024-01-15", Entries: 2, Calories: 100, Protein: 0, NetCarbs: 25, Fat: 0},
	}
	got, err := BuildWeeklySummary("2024-01-15", rows)
	if err != nil {
		t.Fatalf("BuildWeeklySummary: %v", err)
	}
	if got.WeekEnd != "2024-01-21" {
		t.Errorf("week_end = %s", got.WeekEnd)
	}
	if got.TotalEntries != 3 || got.TotalCalories != 500 {
		t.Errorf("totals = %+v", got)
	}
	if len(got.DailyBreakdown) != 2 || got.DailyBreakdown[0].Date != "2024-01-15" {
		t.Fatalf("breakdown = %+v", got.DailyBreakdown)
	}
	// Each day is split against its own calories.
	if got.DailyBreakdown[0].CarbsPercentage != "100.0" || got.DailyBreakdown[1].ProteinPercentage != "40.0" {
		t.Errorf("per-day percentages = %+v", got.DailyBreakdown)
	}

	_, err = BuildWeeklySummary("next monday", rows)
	assertKind(t, err, ErrInvalidInput)
}

func TestBuildRangeSummaryAveragesOverDaysWithData(t *testing.T) {
	rows := []DayTotals{
		{LogDate: "2024-01-01", Entries: 1, Calories: 1000, Protein: 50, NetCarbs: 100, Fat: 40},
		{LogDate: "2024-01-03", Entries: 2, Calories: 2000, Protein: 100, NetCarbs: 200, Fat: 80},
		{LogDate: "2024-01-10", Entries: 1, Calories: 1500, Protein: 75, NetCarbs: 150, Fat: 60},
	}
	got := BuildRangeSummary("2024-01-01", "2024-01-31", rows)
	if got.DaysCount != 3 {
		t.Errorf("days_count = %d, want 3", got.DaysCount)
	}
	if got.Totals.Calories != 4500 || got.Totals.Entries != 4 {
		t.Errorf("totals = %+v", got.Totals)
	}
	want := PeriodAverages{Calories: 1500, Protein: 75, NetCarbs: 150, Fat: 60}
	if got.Averages != want {
		t.Errorf("averages = %+v, want %+v", got.Averages, want)
	}
	if len(got.DailyData) != 3 {
		t.Errorf("daily_data = %d rows", len(got.DailyData))
	}

	empty := BuildRangeSummary("2024-01-01", "2024-01-31", nil)
	if empty.DaysCount != 0 || empty.Averages != (PeriodAverages{}) || empty.DailyData == nil {
		t.Errorf("empty range = %+v", empty)
	}
}

func TestGroupByDate(t *testing.T) {
	logs := []models.FoodLog{
		{LogDate: "2024-01-02", Snapshot: models.Snapshot{Calories: 100, ProteinGrams: 10, NetCarbsGrams: 5, FatGrams: 1}},
		{LogDate: "2024-01-01", Snapshot: models.Snapshot{Calories: 50}},
		{LogDate: "2024-01-02", Snapshot: models.Snapshot{Calories: 25, ProteinGrams: 2}},
	}
	got := GroupByDate(logs)
	want := []DayTotals{
		{LogDate: "2024-01-01", Entries: 1, Calories: 50},
		{LogDate: "2024-01-02", Entries: 2, Calories: 125, Protein: 12, NetCarbs: 5, Fat: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupByDate = %+v, want %+v", got, want)
	}
}

func TestAnalyticsFromDatabase(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	chicken := e.mustFood(t, "Chicken", 165, 31, 0, 0, 3.6)
	rice := e.mustFood(t, "Rice", 130, 2.7, 28, 0.4, 0.3)
	for _, req := range []LogRequest{
		{LogDate: "2024-01-15", LogTime: "12:00", FoodID: uintp(chicken.ID)},
		{LogDate: "2024-01-15", LogTime: "12:00", FoodID: uintp(rice.ID), Servings: f64(2)},
		{LogDate: "2024-01-16", LogTime: "19:00", FoodID: uintp(chicken.ID), Servings: f64(2)},
		{LogDate: "2024-01-22", LogTime: "19:00", FoodID: uintp(rice.ID)},
	} {
		e.mustLog(t, req)
	}

	daily, err := e.analytics.Daily(ctx, "2024-01-15")
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if daily.TotalEntries != 2 || daily.TotalCalories != 425 || daily.TotalNetCarbs != 55.2 {
		t.Errorf("daily = %+v", daily)
	}

	empty, err := e.analytics.Daily(ctx, "2023-12-31")
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if empty.TotalEntries != 0 || empty.ProteinPercentage != "0" {
		t.Errorf("empty day = %+v", empty)
	}

	week, err := e.analytics.Weekly(ctx, "2024-01-15")
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}
	if week.TotalEntries != 3 || len(week.DailyBreakdown) != 2 {
		t.Errorf("week = %+v", week)
	}

	rng, err := e.analytics.Range(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if rng.DaysCount != 3 || rng.Totals.Entries != 4 {
		t.Errorf("range = %+v", rng)
	}

	// The SQL grouping and the in-memory grouping agree.
	rows, err := e.analytics.SumByDate(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("SumByDate: %v", err)
	}
	var logs []models.FoodLog
	e.db.Find(&logs)
	mem := GroupByDate(logs)
	if len(rows) != len(mem) {
		t.Fatalf("SumByDate %d rows, GroupByDate %d", len(rows), len(mem))
	}
	for i := range rows {
		if rows[i].LogDate != mem[i].LogDate || rows[i].Entries != mem[i].Entries {
			t.Errorf("row %d: %+v vs %+v", i, rows[i], mem[i])
		}
		assertFloat(t, "calories "+rows[i].LogDate, rows[i].Calories, mem[i].Calories)
	}

	_, err = e.analytics.Range(ctx, "2024-02-01", "2024-01-01")
	assertKind(t, err, ErrInvalidInput)
	_, err = e.analytics.Daily(ctx, "2024-13-01")
	assertKind(t, err, ErrInvalidInput)
	_, err = e.analytics.Weekly(ctx, "")
	assertKind(t, err, ErrInvalidInput)
}

func TestRangeSummaryWeekWithThreeDays(t *testing.T) {
	rows := GroupByDate([]models.FoodLog{
		{LogDate: "2024-01-01", Snapshot: models.Snapshot{Calories: 2100}},
		{LogDate: "2024-01-04", Snapshot: models.Snapshot{Calories: 1800}},
		{LogDate: "2024-01-07", Snapshot: models.Snapshot{Calories: 1500}},
	})
	got := BuildRangeSummary("2024-01-01", "2024-01-07", rows)
	if got.DaysCount != 3 {
		t.Errorf("days_count = %d, want 3", got.DaysCount)
	}
	if got.Averages.Calories != 1800 {
		t.Errorf("average calories = %v, want 1800", got.Averages.Calories)
	}
}
