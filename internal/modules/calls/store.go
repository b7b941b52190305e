package calls

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/callscope/core/internal/models"
)

// Querier is the subset of pgxpool.Pool the store needs. pgxmock satisfies
// it, which keeps the store testable without a live database.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Store struct {
	db Querier
}

func NewStore(db Querier) *Store {
	return &Store{db: db}
}

const summaryColumns = "id, started_at, duration_minutes, caller, status, call_type, cost, summary"

func (s *Store) List(ctx context.Context, f ListFilter) ([]models.CallSummary, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		conds = append(conds, "status = "+arg(f.Status))
	}
	if f.CallType != "" {
		conds = append(conds, "call_type = "+arg(f.CallType))
	}
	if f.Caller != "" {
		conds = append(conds, "caller ILIKE "+arg("%"+f.Caller+"%"))
	}
	if !f.From.IsZero() {
		conds = append(conds, "started_at >= "+arg(f.From))
	}
	if !f.To.IsZero() {
		conds = append(conds, "started_at <= "+arg(f.To))
	}

	query := "SELECT " + summaryColumns + " FROM call_summaries"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY started_at DESC"
	query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query call summaries: %w", err)
	}
	defer rows.Close()

	out := []models.CallSummary{}
	for rows.Next() {
		var c models.CallSummary
		if err := rows.Scan(&c.ID, &c.StartedAt, &c.DurationMinutes, &c.Caller, &c.Status, &c.CallType, &c.Cost, &c.Summary); err != nil {
			return nil, fmt.Errorf("scan call summary: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate call summaries: %w", err)
	}
	return out, nil
}

// Stats aggregates the whole table in one round trip.
func (s *Store) Stats(ctx context.Context) (*models.CallStats, error) {
	const query = `
		SELECT count(*),
		       count(*) FILTER (WHERE status = 'completed'),
		       count(*) FILTER (WHERE status = 'missed'),
		       count(*) FILTER (WHERE status = 'ongoing'),
		       COALESCE(sum(duration_minutes), 0),
		       COALESCE(sum(cost), 0)
		FROM call_summaries`

	var st models.CallStats
	err := s.db.QueryRow(ctx, query).Scan(
		&st.TotalCalls, &st.Completed, &st.Missed, &st.Ongoing,
		&st.TotalMinutes, &st.TotalCost,
	)
	if err != nil {
		return nil, fmt.Errorf("query call stats: %w", err)
	}
	return &st, nil
}

func (s *Store) Insert(ctx context.Context, c *models.CallSummary) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO call_summaries (`+summaryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.StartedAt, c.DurationMinutes, c.Caller, c.Status, c.CallType, c.Cost, c.Summary,
	)
	if err != nil {
		return fmt.Errorf("insert call summary: %w", err)
	}
	return nil
}
