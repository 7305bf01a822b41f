package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/marcus-bailey/nom-nom-tracker/models"
	"github.com/marcus-bailey/nom-nom-tracker/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LogSource is what a log entry consumed: a FoodSource or a MealSource.
type LogSource interface {
	refs() (foodID, mealID *uint)
}

type FoodSource struct{ FoodID uint }

type MealSource struct{ MealID uint }

func (s FoodSource) refs() (*uint, *uint) { id := s.FoodID; return &id, nil }
func (s MealSource) refs() (*uint, *uint) { id := s.MealID; return nil, &id }

// SourceFromIDs requires exactly one of foodID and mealID. Zero counts as unset.
func SourceFromIDs(foodID, mealID *uint) (LogSource, error) {
	hasFood := foodID != nil && *foodID != 0
	hasMeal := mealID != nil && *mealID != 0
	switch {
	case hasFood && hasMeal:
		return nil, invalidf("a log entry references either food_id or meal_id, not both")
	case hasFood:
		return FoodSource{FoodID: *foodID}, nil
	case hasMeal:
		return MealSource{MealID: *mealID}, nil
	}
	return nil, invalidf("food_id or meal_id is required")
}

type LogRequest struct {
	LogDate  string   `json:"log_date" binding:"required,calendar_date"`
	LogTime  string   `json:"log_time" binding:"required,clock_time"`
	FoodID   *uint    `json:"food_id"`
	MealID   *uint    `json:"meal_id"`
	Servings *float64 `json:"servings"`
	Notes    string   `json:"notes"`
}

type LogUpdateRequest struct {
	LogDate  *string  `json:"log_date" binding:"omitempty,calendar_date"`
	LogTime  *string  `json:"log_time" binding:"omitempty,clock_time"`
	Servings *float64 `json:"servings"`
	Notes    *string  `json:"notes"`
}

// LogFilter selects a single Date, or the inclusive Start..End range, or
// everything when both are empty.
type LogFilter struct {
	Date  string
	Start string
	End   string
}

type LogService struct {
	db    *gorm.DB
	foods *FoodService
	meals *MealService
}

func NewLogService(db *gorm.DB, foods *FoodService, meals *MealService) *LogService {
	return &LogService{db: db, foods: foods, meals: meals}
}

// ComputeSnapshot resolves the source's current profile and scales it by
// servings. For a meal the aggregated meal total is what gets scaled.
func (s *LogService) ComputeSnapshot(ctx context.Context, src LogSource, servings float64) (models.Snapshot, error) {
	if err := checkServings(servings); err != nil {
		return models.Snapshot{}, err
	}
	var base models.Nutrients
	switch src := src.(type) {
	case FoodSource:
		food, err := s.foods.Get(ctx, src.FoodID)
		if err != nil {
			return models.Snapshot{}, err
		}
		base = food.Nutrients
	case MealSource:
		_, total, err := s.meals.Totals(ctx, src.MealID)
		if err != nil {
			return models.Snapshot{}, err
		}
		base = total
	default:
		return models.Snapshot{}, invalidf("unknown log source %T", src)
	}
	return models.SnapshotOf(base.Scale(servings)), nil
}

func (s *LogService) List(ctx context.Context, f LogFilter) ([]LogView, error) {
	q := s.withNames(s.db.WithContext(ctx))
	switch {
	case f.Date != "":
		if _, err := utils.ParseCalendarDate(f.Date); err != nil {
			return nil, invalidf("%v", err)
		}
		q = q.Where("log_date = ?", f.Date)
	case f.Start != "" && f.End != "":
		if err := checkRange(f.Start, f.End); err != nil {
			return nil, err
		}
		q = q.Where("log_date >= ? AND log_date <= ?", f.Start, f.End)
	}
	var logs []models.FoodLog
	if err := q.Order("log_date DESC, log_time DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	out := make([]LogView, 0, len(logs))
	for _, l := range logs {
		out = append(out, NewLogView(l))
	}
	return out, nil
}

func (s *LogService) Get(ctx context.Context, id uint) (*LogView, error) {
	var entry models.FoodLog
	if err := s.withNames(s.db.WithContext(ctx)).First(&entry, id).Error; err != nil {
		return nil, lookupError(err, "log entry", id)
	}
	v := NewLogView(entry)
	return &v, nil
}

func (s *LogService) Create(ctx context.Context, req LogRequest) (*LogView, error) {
	src, err := SourceFromIDs(req.FoodID, req.MealID)
	if err != nil {
		return nil, err
	}
	servings, err := servingsOrDefault(req.Servings)
	if err != nil {
		return nil, err
	}
	entry := models.FoodLog{Servings: servings, Notes: strings.TrimSpace(req.Notes)}
	if err := setWhen(&entry, req.LogDate, req.LogTime); err != nil {
		return nil, err
	}
	entry.FoodID, entry.MealID = src.refs()
	if entry.Snapshot, err = s.ComputeSnapshot(ctx, src, servings); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("insert log entry: %w", err)
	}
	return s.Get(ctx, entry.ID)
}

// Update applies the request and regenerates the whole snapshot from the
// source's current data. The stored snapshot is never patched.
func (s *LogService) Update(ctx context.Context, id uint, req LogUpdateRequest) (*LogView, error) {
	var entry models.FoodLog
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, lookupError(err, "log entry", id)
	}
	src, err := SourceFromIDs(entry.FoodID, entry.MealID)
	if err != nil {
		return nil, notFoundf("the food or meal of log entry %d no longer exists", id)
	}

	servings := entry.Servings
	if req.Servings != nil {
		if err := checkServings(*req.Servings); err != nil {
			return nil, err
		}
		servings = *req.Servings
	}
	date, clock := entry.LogDate, entry.LogTime.String()
	if req.LogDate != nil {
		date = *req.LogDate
	}
	if req.LogTime != nil {
		clock = *req.LogTime
	}
	if err := setWhen(&entry, date, clock); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		entry.Notes = strings.TrimSpace(*req.Notes)
	}

	snap, err := s.ComputeSnapshot(ctx, src, servings)
	if err != nil {
		return nil, err
	}
	entry.Servings = servings
	entry.Snapshot = snap
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&entry).Error; err != nil {
		return nil, fmt.Errorf("update log entry %d: %w", id, err)
	}
	return s.Get(ctx, id)
}

func (s *LogService) Delete(ctx context.Context, id uint) (*models.FoodLog, error) {
	var entry models.FoodLog
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, lookupError(err, "log entry", id)
	}
	if err := s.db.WithContext(ctx).Delete(&entry).Error; err != nil {
		return nil, fmt.Errorf("delete log entry %d: %w", id, err)
	}
	return &entry, nil
}

func (s *LogService) withNames(q *gorm.DB) *gorm.DB {
	return q.Preload("Food").Preload("Meal")
}

func setWhen(entry *models.FoodLog, date, clock string) error {
	if _, err := utils.ParseCalendarDate(date); err != nil {
		return invalidf("%v", err)
	}
	h, m, sec, err := utils.ParseClockTime(clock)
	if err != nil {
		return invalidf("%v", err)
	}
	entry.LogDate = date
	entry.LogTime = datatypes.NewTime(h, m, sec, 0)
	return nil
}
