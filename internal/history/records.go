package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"fileninja/internal/organize"
)

// Entry is one row of the movement log.
type Entry struct {
	ID           int64     `json:"id"`
	OriginalName string    `json:"original_name"`
	NewPath      string    `json:"new_path"`
	Category     string    `json:"category"`
	SizeBytes    int64     `json:"size_bytes"`
	Tags         []string  `json:"tags"`
	MovedAt      time.Time `json:"moved_at"`
}

// Record appends a move record to the log. Implements organize.AuditRecorder.
func (s *Store) Record(ctx context.Context, record organize.MoveRecord) error {
	tags, err := json.Marshal(record.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	movedAt := record.MovedAt
	if movedAt.IsZero() {
		movedAt = time.Now().UTC()
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = s.execWithRetry(ctx,
		`INSERT INTO file_logs (original_name, new_path, category, size_bytes, tags, moved_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.OriginalName,
		record.NewPath,
		record.Category,
		record.SizeBytes,
		string(tags),
		movedAt.UTC().Format(time.RFC3339Nano),
		now,
	)
	if err != nil {
		return fmt.Errorf("insert file log: %w", err)
	}
	return nil
}

// Recent returns the latest entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return s.Search(ctx, SearchQuery{Limit: limit})
}

// SearchQuery filters the movement log. Zero values mean "no filter".
type SearchQuery struct {
	Category string
	Tag      string
	Since    time.Time
	Until    time.Time
	Limit    int
}

// Search returns log entries matching the query, newest first.
func (s *Store) Search(ctx context.Context, query SearchQuery) ([]Entry, error) {
	ctx = ensureContext(ctx)

	var (
		conditions []string
		args       []any
	)
	if trimmed := strings.TrimSpace(query.Category); trimmed != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, trimmed)
	}
	if trimmed := strings.TrimSpace(query.Tag); trimmed != "" {
		// Tags are stored as a JSON array of strings.
		conditions = append(conditions, "tags LIKE ?")
		args = append(args, `%"`+trimmed+`"%`)
	}
	if !query.Since.IsZero() {
		conditions = append(conditions, "moved_at >= ?")
		args = append(args, query.Since.UTC().Format(time.RFC3339Nano))
	}
	if !query.Until.IsZero() {
		conditions = append(conditions, "moved_at <= ?")
		args = append(args, query.Until.UTC().Format(time.RFC3339Nano))
	}

	sqlQuery := "SELECT id, original_name, new_path, category, size_bytes, tags, moved_at FROM file_logs"
	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += " ORDER BY moved_at DESC, id DESC"
	limit := query.Limit
	if limit <= 0 {
		limit = 100
	}
	sqlQuery += " LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query file logs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry   Entry
		tagsRaw string
		movedAt string
	)
	if err := rows.Scan(&entry.ID, &entry.OriginalName, &entry.NewPath, &entry.Category, &entry.SizeBytes, &tagsRaw, &movedAt); err != nil {
		return Entry{}, fmt.Errorf("scan file log: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsRaw), &entry.Tags); err != nil {
		entry.Tags = nil
	}
	entry.MovedAt = parseTimeString(movedAt)
	return entry, nil
}

func parseTimeString(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// CategoryCount aggregates moves for one category.
type CategoryCount struct {
	Count int64 `json:"count"`
	Bytes int64 `json:"bytes"`
}

// TagCount pairs a tag with its usage count.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// DayCount pairs a date (YYYY-MM-DD) with the number of moves on that day.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Statistics summarizes the movement log.
type Statistics struct {
	TotalMoves    int64                    `json:"total_moves"`
	TotalBytes    int64                    `json:"total_bytes"`
	ByCategory    map[string]CategoryCount `json:"by_category"`
	PopularTags   []TagCount               `json:"popular_tags"`
	LastSevenDays []DayCount               `json:"last_seven_days"`
}

// Statistics aggregates totals, per-category counts, popular tags, and the
// last seven days of activity.
func (s *Store) Statistics(ctx context.Context) (Statistics, error) {
	ctx = ensureContext(ctx)
	stats := Statistics{ByCategory: make(map[string]CategoryCount)}

	rows, err := s.db.QueryContext(ctx,
		"SELECT category, COUNT(*), COALESCE(SUM(size_bytes), 0) FROM file_logs GROUP BY category")
	if err != nil {
		return Statistics{}, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			category string
			count    CategoryCount
		)
		if err := rows.Scan(&category, &count.Count, &count.Bytes); err != nil {
			return Statistics{}, fmt.Errorf("scan category totals: %w", err)
		}
		stats.ByCategory[category] = count
		stats.TotalMoves += count.Count
		stats.TotalBytes += count.Bytes
	}
	if err := rows.Err(); err != nil {
		return Statistics{}, err
	}

	popular, err := s.popularTags(ctx)
	if err != nil {
		return Statistics{}, err
	}
	stats.PopularTags = popular

	days, err := s.lastSevenDays(ctx)
	if err != nil {
		return Statistics{}, err
	}
	stats.LastSevenDays = days

	return stats, nil
}

func (s *Store) popularTags(ctx context.Context) ([]TagCount, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tags FROM file_logs")
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan tags: %w", err)
		}
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			continue
		}
		for _, tag := range tags {
			counts[tag]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	popular := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		popular = append(popular, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Count != popular[j].Count {
			return popular[i].Count > popular[j].Count
		}
		return popular[i].Tag < popular[j].Tag
	})
	if len(popular) > 10 {
		popular = popular[:10]
	}
	return popular, nil
}

func (s *Store) lastSevenDays(ctx context.Context) ([]DayCount, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -7).Format(time.RFC3339Nano)
	rows, err := s.db.QueryContext(ctx,
		"SELECT substr(moved_at, 1, 10), COUNT(*) FROM file_logs WHERE moved_at >= ? GROUP BY 1 ORDER BY 1",
		cutoff)
	if err != nil {
		return nil, fmt.Errorf("query daily activity: %w", err)
	}
	defer rows.Close()

	var days []DayCount
	for rows.Next() {
		var day DayCount
		if err := rows.Scan(&day.Date, &day.Count); err != nil {
			return nil, fmt.Errorf("scan daily activity: %w", err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}
