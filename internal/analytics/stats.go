package analytics

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

type PathCount struct {
	Path string `json:"path"`
	Hits int64  `json:"hits"`
}

type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats summarises visits and contact submissions.
type Stats struct {
	TotalVisitors    int64       `json:"total_visitors"`
	UniqueVisitors   int64       `json:"unique_visitors"`
	VisitorsToday    int64       `json:"visitors_today"`
	VisitorsThisWeek int64       `json:"visitors_this_week"`
	TopPaths         []PathCount `json:"top_paths"`
	RecentVisitors   []Visit     `json:"recent_visitors"`
	ContactsSent     int64       `json:"contacts_sent"`
	ContactsFailed   int64       `json:"contacts_failed"`
}

// Stats gathers the dashboard numbers. recent caps RecentVisitors.
func (s *Store) Stats(ctx context.Context, recent int) (*Stats, error) {
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stats := &Stats{}

	counts := []struct {
		dst *int64
		q   sq.SelectBuilder
	}{
		{&stats.TotalVisitors, sq.Select("COUNT(*)").From("visitors")},
		{&stats.UniqueVisitors, sq.Select("COUNT(DISTINCT hashed_ip)").From("visitors")},
		{&stats.VisitorsToday, sq.Select("COUNT(*)").From("visitors").
			Where(sq.GtOrEq{"timestamp": startOfDay.Format(timeLayout)})},
		{&stats.VisitorsThisWeek, sq.Select("COUNT(*)").From("visitors").
			Where(sq.GtOrEq{"timestamp": now.Add(-7 * 24 * time.Hour).Format(timeLayout)})},
		{&stats.ContactsSent, sq.Select("COUNT(*)").From("contact_submissions").Where(sq.Eq{"success": 1})},
		{&stats.ContactsFailed, sq.Select("COUNT(*)").From("contact_submissions").Where(sq.Eq{"success": 0})},
	}
	for _, c := range counts {
		if err := c.q.RunWith(s.db).QueryRowContext(ctx).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("counting: %w", err)
		}
	}

	top, err := s.topPaths(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.TopPaths = top

	visits, err := s.recentVisits(ctx, recent)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = visits
	return stats, nil
}

func (s *Store) topPaths(ctx context.Context, limit uint64) ([]PathCount, error) {
	rows, err := sq.Select("path", "COUNT(*) AS hits").
		From("visitors").
		GroupBy("path").
		OrderBy("hits DESC", "path").
		Limit(limit).
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying top paths: %w", err)
	}
	defer rows.Close()

	var out []PathCount
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Hits); err != nil {
			return nil, fmt.Errorf("scanning path count: %w", err)
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

func (s *Store) recentVisits(ctx context.Context, limit int) ([]Visit, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := sq.Select("id", "hashed_ip", "user_agent", "path", "timestamp").
		From("visitors").
		OrderBy("timestamp DESC", "id DESC").
		Limit(uint64(limit)).
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying visitors: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		// The driver decodes DATETIME columns into time.Time.
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		v.Timestamp = v.Timestamp.UTC()
		out = append(out, v)
	}
	return out, rows.Err()
}
