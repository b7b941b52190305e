package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/callscope/core/internal/config"
	"github.com/callscope/core/internal/database"
	"github.com/callscope/core/internal/models"
	"github.com/callscope/core/internal/modules/calls"
)

// seed loads a deterministic batch of call summaries so a fresh environment
// has data on the dashboard. Row IDs are derived from the row content, so
// re-running the command skips what is already there.
func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.ConnectPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	store := calls.NewStore(pool)

	inserted, skipped := 0, 0
	for _, row := range seedRows() {
		if err := store.Insert(ctx, &row); err != nil {
			if isUniqueViolation(err) {
				skipped++
				continue
			}
			logger.Fatal("failed to insert call summary", zap.String("id", row.ID), zap.Error(err))
		}
		inserted++
	}

	logger.Info("seed complete", zap.Int("inserted", inserted), zap.Int("skipped", skipped))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func seedRows() []models.CallSummary {
	base := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	specs := []struct {
		offset   time.Duration
		duration int
		caller   string
		status   string
		callType string
		cost     float64
		summary  string
	}{
		{0, 12, "Alice Chen", models.CallStatusCompleted, models.CallTypeSupport, 4.80, "Walked the caller through resetting their account password."},
		{2 * time.Hour, 0, "Bob Ramirez", models.CallStatusMissed, models.CallTypeSales, 0, ""},
		{5 * time.Hour, 27, "Priya Nair", models.CallStatusCompleted, models.CallTypeConsultation, 10.80, "Scoped a migration of the billing workflow to the new plan tier."},
		{26 * time.Hour, 8, "Dana Fox", models.CallStatusCompleted, models.CallTypeTechnical, 3.20, "Diagnosed an intermittent modem fault and scheduled a replacement."},
		{28 * time.Hour, 15, "Miguel Santos", models.CallStatusCompleted, models.CallTypeFollowUp, 6.00, "Confirmed last week's fix held and closed the ticket."},
		{50 * time.Hour, 0, "Jo Keller", models.CallStatusMissed, models.CallTypeSupport, 0, ""},
		{73 * time.Hour, 42, "Fatima al-Rashid", models.CallStatusCompleted, models.CallTypeSales, 16.80, "Upsold the annual plan after a pricing comparison."},
		{96 * time.Hour, 3, "Sam Osei", models.CallStatusOngoing, models.CallTypeSupport, 1.20, "Investigating a login loop on the mobile app."},
		{120 * time.Hour, 19, "Lena Novak", models.CallStatusCompleted, models.CallTypeTechnical, 7.60, "Recovered a corrupted export and re-enabled scheduled backups."},
		{125 * time.Hour, 6, "Ravi Patel", models.CallStatusCompleted, models.CallTypeFollowUp, 2.40, "Verified invoice corrections landed on the latest statement."},
	}

	rows := make([]models.CallSummary, 0, len(specs))
	for _, s := range specs {
		started := base.Add(s.offset)
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s|%s", s.caller, started.Format(time.RFC3339))))
		rows = append(rows, models.CallSummary{
			ID:              id.String(),
			StartedAt:       started,
			DurationMinutes: s.duration,
			Caller:          s.caller,
			Status:          s.status,
			CallType:        s.callType,
			Cost:            s.cost,
			Summary:         s.summary,
		})
	}
	return rows
}
