package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ReportStore persists a rendered report and returns where it can be read.
type ReportStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type ReportService struct {
	analytics *AnalyticsService
	store     ReportStore
	now       func() time.Time
}

// NewReportService accepts a nil store; exports then fail with ErrUnavailable.
func NewReportService(analytics *AnalyticsService, store ReportStore) *ReportService {
	return &ReportService{analytics: analytics, store: store, now: time.Now}
}

type ReportExport struct {
	Key     string        `json:"key"`
	URL     string        `json:"url"`
	Summary *RangeSummary `json:"summary"`
}

// ExportRange renders the range summary as JSON and stores it.
func (r *ReportService) ExportRange(ctx context.Context, start, end string) (*ReportExport, error) {
	if r.store == nil {
		return nil, &Error{Kind: ErrUnavailable, Msg: "report storage is not configured"}
	}
	summary, err := r.analytics.Range(ctx, start, end)
	if err != nil {
		return nil, err
	}
	body, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	key := fmt.Sprintf("reports/%s_%s-%d.json", start, end, r.now().UnixNano())
	url, err := r.store.Put(ctx, key, body, "application/json")
	if err != nil {
		return nil, fmt.Errorf("store report %s: %w", key, err)
	}
	return &ReportExport{Key: key, URL: url, Summary: summary}, nil
}
