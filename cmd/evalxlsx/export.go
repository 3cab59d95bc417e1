package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/contoso/creative-eval/evaluation/result"
)

const (
	defaultSummarySheet = "Summary"
	defaultRowsSheet    = "Rows"
)

type exportOptions struct {
	OutputPath   string
	SummarySheet string
	RowsSheet    string
}

func loadResultFile(path string) (*result.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	res, err := result.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return res, nil
}

func exportXLSX(res *result.Result, opts exportOptions) error {
	if res == nil {
		return errors.New("result is nil")
	}
	if opts.OutputPath == "" {
		return errors.New("output path is required")
	}

	summarySheet := opts.SummarySheet
	if summarySheet == "" {
		summarySheet = defaultSummarySheet
	}
	rowsSheet := opts.RowsSheet
	if rowsSheet == "" {
		rowsSheet = defaultRowsSheet
	}

	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("create output directory: %w", err)
	}

	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	originalSheet := file.GetSheetName(0)
	if err := file.SetSheetName(originalSheet, summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeSummarySheet(file, summarySheet, res); err != nil {
		return err
	}

	if _, err := file.NewSheet(rowsSheet); err != nil {
		return fmt.Errorf("create rows sheet: %w", err)
	}
	if err := writeRowsSheet(file, rowsSheet, res.Rows); err != nil {
		return err
	}

	if err := file.SaveAs(opts.OutputPath); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}

	return nil
}

func writeSummarySheet(file *excelize.File, sheetName string, res *result.Result) error {
	if err := file.SetColWidth(sheetName, "A", "A", 40); err != nil {
		return fmt.Errorf("set width for A: %w", err)
	}
	if err := file.SetColWidth(sheetName, "B", "B", 60); err != nil {
		return fmt.Errorf("set width for B: %w", err)
	}

	if err := file.SetCellValue(sheetName, "A1", "Metric"); err != nil {
		return fmt.Errorf("write header A1: %w", err)
	}
	if err := file.SetCellValue(sheetName, "B1", "Value"); err != nil {
		return fmt.Errorf("write header B1: %w", err)
	}

	if err := file.SetCellValue(sheetName, "A2", "studio_url"); err != nil {
		return fmt.Errorf("write A2: %w", err)
	}
	if err := file.SetCellValue(sheetName, "B2", res.StudioURL); err != nil {
		return fmt.Errorf("write B2: %w", err)
	}

	for i, key := range res.MetricKeys() {
		row := i + 3
		if err := file.SetCellValue(sheetName, fmt.Sprintf("A%d", row), key); err != nil {
			return fmt.Errorf("write A%d: %w", row, err)
		}
		if err := file.SetCellValue(sheetName, fmt.Sprintf("B%d", row), res.Metrics[key]); err != nil {
			return fmt.Errorf("write B%d: %w", row, err)
		}
	}

	return nil
}

func writeRowsSheet(file *excelize.File, sheetName string, rows []result.Row) error {
	keys := rowKeys(rows)

	for idx, key := range keys {
		cell, cellErr := excelize.CoordinatesToCellName(idx+1, 1)
		if cellErr != nil {
			return fmt.Errorf("convert header cell: %w", cellErr)
		}
		if err := file.SetCellValue(sheetName, cell, key); err != nil {
			return fmt.Errorf("write header %s: %w", cell, err)
		}
		col, _ := excelize.ColumnNumberToName(idx + 1)
		if err := file.SetColWidth(sheetName, col, col, 30); err != nil {
			return fmt.Errorf("set width for %s: %w", col, err)
		}
	}

	for i, row := range rows {
		for idx, key := range keys {
			value, ok := row[key]
			if !ok {
				continue
			}
			cell, cellErr := excelize.CoordinatesToCellName(idx+1, i+2)
			if cellErr != nil {
				return fmt.Errorf("convert cell: %w", cellErr)
			}
			if err := file.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	return nil
}

func rowKeys(rows []result.Row) []string {
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, row := range rows {
		for key := range row {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
