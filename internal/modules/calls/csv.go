package calls

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/callscope/core/internal/models"
)

var csvHeader = []string{"id", "date", "duration_minutes", "caller", "status", "call_type", "cost", "summary"}

// RenderCSV renders call summaries as a CSV document with a header row.
func RenderCSV(rows []models.CallSummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, c := range rows {
		record := []string{
			c.ID,
			c.StartedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(c.DurationMinutes),
			c.Caller,
			c.Status,
			c.CallType,
			strconv.FormatFloat(c.Cost, 'f', 2, 64),
			c.Summary,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
