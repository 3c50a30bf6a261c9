package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ashishkj21/DailyPulseSlackBot/internal/standup"
)

type CSVExporter struct {
	OutputDir string
}

func NewCSVExporter(outputDir string) *CSVExporter {
	return &CSVExporter{OutputDir: outputDir}
}

// Export writes two files: the full update list and a per-user dashboard.
func (e *CSVExporter) Export(updates []standup.Update, from, to time.Time) error {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := e.exportUpdateList(updates); err != nil {
		return fmt.Errorf("failed to export update list: %w", err)
	}

	if err := e.exportDashboard(updates, from, to); err != nil {
		return fmt.Errorf("failed to export dashboard: %w", err)
	}

	return nil
}

func (e *CSVExporter) exportUpdateList(updates []standup.Update) error {
	filename := filepath.Join(e.OutputDir, timestampedName("dailypulse_updates", "csv"))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"#", "Username", "Date", "Accomplishment", "Todo", "Blocker"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, u := range updates {
		row := []string{
			fmt.Sprintf("%d", i+1),
			u.Username,
			formatDate(u.Date),
			u.Accomplishment,
			u.Todo,
			u.Blocker,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (e *CSVExporter) exportDashboard(updates []standup.Update, from, to time.Time) error {
	filename := filepath.Join(e.OutputDir, timestampedName("dailypulse_dashboard", "csv"))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Date From:", from.Format("2006-01-02")}); err != nil {
		return err
	}
	if err := writer.Write([]string{"Date To:", to.Format("2006-01-02")}); err != nil {
		return err
	}
	if err := writer.Write([]string{""}); err != nil {
		return err
	}

	header := []string{"Username", "Updates", "With Blockers", "Last Update"}
	if err := writer.Write(header); err != nil {
		return err
	}

	stats := statsByUser(updates)
	for _, name := range usernames(updates) {
		s := stats[name]
		row := []string{
			name,
			fmt.Sprintf("%d", s.updates),
			fmt.Sprintf("%d", s.withBlockers),
			formatDate(s.lastDate),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}
