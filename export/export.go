// Package export persists a run's records to XLSX or CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/leadforge/giscrawl/models"
)

const (
	recordsSheet = "Организации"
	statsSheet   = "Статистика"
)

var header = []string{
	"Название", "Адрес", "Телефон", "Сайт", "WhatsApp", "Instagram",
	"Категория", "Есть сайт",
}

// maxColumnWidth caps the auto-sized column widths.
const maxColumnWidth = 50

// Write persists the records to path. A .csv extension selects the CSV
// writer, everything else gets an XLSX workbook with a stats sheet. An
// empty path auto-names the file from the city and the run timestamp.
func Write(path, city string, records []models.BusinessRecord, stats models.RunStats) (string, error) {
	if path == "" {
		path = DefaultFilename(city, time.Now())
	}
	var err error
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		err = writeCSV(path, records)
	} else {
		err = writeXLSX(path, records, stats)
	}
	if err != nil {
		return "", models.NewCrawlError(models.ErrCodeExport, "write "+path, err)
	}
	return path, nil
}

// DefaultFilename builds the auto-generated output name.
func DefaultFilename(city string, t time.Time) string {
	return fmt.Sprintf("gis_leads_%s_%s.xlsx", city, t.Format("20060102_150405"))
}

// recordRow renders one record in header order.
func recordRow(r models.BusinessRecord) []string {
	hasSite := "Нет"
	if r.HasWebsite {
		hasSite = "Да"
	}
	return []string{
		r.Name, r.Address, r.Phone, r.Website, r.WhatsApp, r.Instagram,
		r.Category, hasSite,
	}
}

func writeXLSX(path string, records []models.BusinessRecord, stats models.RunStats) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", recordsSheet)

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(recordsSheet, cell, title); err != nil {
			return err
		}
	}

	widths := make([]int, len(header))
	for i, title := range header {
		widths[i] = len([]rune(title))
	}
	for row, r := range records {
		values := recordRow(r)
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(recordsSheet, cell, v); err != nil {
				return err
			}
			if n := len([]rune(v)); n > widths[col] {
				widths[col] = n
			}
		}
	}
	for col := range header {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		w := widths[col] + 2
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		if err := f.SetColWidth(recordsSheet, name, name, float64(w)); err != nil {
			return err
		}
	}

	if err := writeStatsSheet(f, stats); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeStatsSheet(f *excelize.File, stats models.RunStats) error {
	if _, err := f.NewSheet(statsSheet); err != nil {
		return err
	}
	rows := []struct {
		label string
		value int
	}{
		{"Уникальных компаний", stats.UniqueCompanies},
		{"Всего записей", stats.TotalRecords},
		{"Пропущено дублей", stats.DuplicatesSkipped},
		{"Категорий обработано", stats.CategoriesProcessed},
		{"С сайтом", stats.WithWebsite},
		{"С WhatsApp", stats.WithWhatsApp},
		{"С Instagram", stats.WithInstagram},
	}
	for i, r := range rows {
		if err := f.SetCellValue(statsSheet, fmt.Sprintf("A%d", i+1), r.label); err != nil {
			return err
		}
		if err := f.SetCellValue(statsSheet, fmt.Sprintf("B%d", i+1), r.value); err != nil {
			return err
		}
	}
	return f.SetColWidth(statsSheet, "A", "A", 30)
}

func writeCSV(path string, records []models.BusinessRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(recordRow(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
