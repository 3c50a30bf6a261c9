// Package export writes dailypulse history to JSON, CSV, and Excel files.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ashishkj21/DailyPulseSlackBot/internal/standup"
)

type Exporter struct {
	OutputDir string
}

func NewExporter(outputDir string) *Exporter {
	return &Exporter{OutputDir: outputDir}
}

type updateRecord struct {
	Username       string `json:"username"`
	Date           string `json:"date"`
	Accomplishment string `json:"accomplishment"`
	Todo           string `json:"todo"`
	Blocker        string `json:"blocker"`
}

// ExportJSON writes the updates as an indented JSON array.
func (e *Exporter) ExportJSON(updates []standup.Update, filename string) error {
	records := make([]updateRecord, 0, len(updates))
	for _, u := range updates {
		records = append(records, updateRecord{
			Username:       u.Username,
			Date:           u.Date.Format("2006-01-02"),
			Accomplishment: u.Accomplishment,
			Todo:           u.Todo,
			Blocker:        u.Blocker,
		})
	}

	data, err := json.MarshalIndent(records, "", "\t")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(e.OutputDir, filename), data, 0644)
}

// usernames returns the distinct usernames in the updates, sorted.
func usernames(updates []standup.Update) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, u := range updates {
		if !seen[u.Username] {
			seen[u.Username] = true
			names = append(names, u.Username)
		}
	}
	sort.Strings(names)
	return names
}

type userStats struct {
	updates      int
	withBlockers int
	lastDate     time.Time
}

func statsByUser(updates []standup.Update) map[string]*userStats {
	stats := make(map[string]*userStats)
	for _, u := range updates {
		s := stats[u.Username]
		if s == nil {
			s = &userStats{}
			stats[u.Username] = s
		}
		s.updates++
		if u.Blocker != "" {
			s.withBlockers++
		}
		if u.Date.After(s.lastDate) {
			s.lastDate = u.Date
		}
	}
	return stats
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func timestampedName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("2006-01-02_15-04-05"), ext)
}
