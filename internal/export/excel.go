package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ashishkj21/DailyPulseSlackBot/internal/standup"
)

type ExcelExporter struct {
	OutputDir string
}

func NewExcelExporter(outputDir string) *ExcelExporter {
	return &ExcelExporter{OutputDir: outputDir}
}

// Export writes a workbook with a Dashboard sheet (per-user summary) and
// a History sheet (every update in range).
func (e *ExcelExporter) Export(updates []standup.Update, from, to time.Time) error {
	filename := filepath.Join(e.OutputDir, timestampedName("dailypulse", "xlsx"))

	f := excelize.NewFile()
	defer f.Close()

	if err := e.createDashboardSheet(f, updates, from, to); err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}

	if err := e.createHistorySheet(f, updates); err != nil {
		return fmt.Errorf("failed to create history sheet: %w", err)
	}

	_ = f.DeleteSheet("Sheet1")

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save excel file: %w", err)
	}

	return nil
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	return style
}

func (e *ExcelExporter) createDashboardSheet(f *excelize.File, updates []standup.Update, from, to time.Time) error {
	const sheetName = "Dashboard"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	f.SetCellValue(sheetName, "A1", "Date From:")
	f.SetCellValue(sheetName, "B1", from.Format("2006-01-02"))
	f.SetCellValue(sheetName, "A2", "Date To:")
	f.SetCellValue(sheetName, "B2", to.Format("2006-01-02"))

	title := cases.Title(language.English)
	headers := []string{"username", "updates", "with blockers", "last update"}

	style := headerStyle(f)
	for col, header := range headers {
		cell := cellName(col+1, 4)
		f.SetCellValue(sheetName, cell, title.String(header))
		f.SetCellStyle(sheetName, cell, cell, style)
	}

	stats := statsByUser(updates)
	row := 5
	for _, name := range usernames(updates) {
		s := stats[name]
		f.SetCellValue(sheetName, cellName(1, row), name)
		f.SetCellValue(sheetName, cellName(2, row), s.updates)
		f.SetCellValue(sheetName, cellName(3, row), s.withBlockers)
		f.SetCellValue(sheetName, cellName(4, row), formatDate(s.lastDate))
		row++
	}

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "D", 15)

	return nil
}

func (e *ExcelExporter) createHistorySheet(f *excelize.File, updates []standup.Update) error {
	const sheetName = "History"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	title := cases.Title(language.English)
	headers := []string{"#", "username", "date", "accomplishment", "todo", "blocker"}

	style := headerStyle(f)
	for col, header := range headers {
		cell := cellName(col+1, 1)
		f.SetCellValue(sheetName, cell, title.String(header))
		f.SetCellStyle(sheetName, cell, cell, style)
	}

	for i, u := range updates {
		row := i + 2
		f.SetCellValue(sheetName, cellName(1, row), i+1)
		f.SetCellValue(sheetName, cellName(2, row), u.Username)
		f.SetCellValue(sheetName, cellName(3, row), formatDate(u.Date))
		f.SetCellValue(sheetName, cellName(4, row), u.Accomplishment)
		f.SetCellValue(sheetName, cellName(5, row), u.Todo)
		f.SetCellValue(sheetName, cellName(6, row), u.Blocker)
	}

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "C", 15)
	f.SetColWidth(sheetName, "D", "F", 45)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnLetter(col), row)
}

func columnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
