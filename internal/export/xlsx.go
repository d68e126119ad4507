package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kpumuk/incidentscope/internal/incidents"
)

const (
	sheetDaily       = "Daily"
	sheetAnnotations = "Annotations"
	sheetRegions     = "Top regions"
)

// WriteXLSX renders c as a workbook with one sheet of daily aggregates,
// one of annotations and one of top regions.
func WriteXLSX(w io.Writer, c Chart) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", sheetDaily); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := []any{"Day"}
	for _, m := range incidents.Measures {
		header = append(header, m.String())
	}
	rows := [][]any{header}
	for _, a := range c.Aggregates {
		row := []any{a.Day.Format(time.DateOnly)}
		for _, m := range incidents.Measures {
			row = append(row, m.Value(a))
		}
		rows = append(rows, row)
	}
	totals := incidents.Sum(c.Aggregates)
	total := []any{"Total"}
	for _, m := range incidents.Measures {
		total = append(total, m.Total(totals))
	}
	rows = append(rows, total)
	if err := writeSheet(f, sheetDaily, rows, bold); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), len(rows))
	if err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, len(rows))
	if err := f.SetCellStyle(sheetDaily, first, last, bold); err != nil {
		return fmt.Errorf("style totals: %w", err)
	}

	if _, err := f.NewSheet(sheetAnnotations); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	rows = [][]any{{"Date", "Label"}}
	for _, a := range c.Annotations {
		rows = append(rows, []any{a.Date.Format(time.DateOnly), a.Label})
	}
	if err := writeSheet(f, sheetAnnotations, rows, bold); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetRegions); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	rows = [][]any{{"Region", "Incidents"}}
	for _, r := range c.Regions {
		rows = append(rows, []any{r.Region, r.Count})
	}
	if err := writeSheet(f, sheetRegions, rows, bold); err != nil {
		return err
	}

	if err := f.SetDocProps(&excelize.DocProperties{Title: c.Title, Description: c.subtitle()}); err != nil {
		return fmt.Errorf("set properties: %w", err)
	}
	return f.Write(w)
}

// writeSheet writes rows from A1 and styles the first one as a header.
func writeSheet(f *excelize.File, sheet string, rows [][]any, header int) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("%s!%s: %w", sheet, cell, err)
			}
		}
	}
	if len(rows) == 0 {
		return nil
	}
	lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("%s: width: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", header); err != nil {
		return fmt.Errorf("%s: header style: %w", sheet, err)
	}
	return nil
}
