package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	var (
		input        string
		output       string
		summarySheet string
		rowsSheet    string
	)

	flag.StringVar(&input, "input", "", "Path to the evaluation result JSON file (required).")
	flag.StringVar(&output, "output", "evaluation_results.xlsx", "Output xlsx file path.")
	flag.StringVar(&summarySheet, "summary-sheet", defaultSummarySheet, "Name for the summary metrics sheet.")
	flag.StringVar(&rowsSheet, "rows-sheet", defaultRowsSheet, "Name for the per-record rows sheet.")
	flag.Parse()

	if input == "" {
		fmt.Fprintln(os.Stderr, "input is required.")
		flag.Usage()
		os.Exit(2)
	}

	res, err := loadResultFile(input)
	if err != nil {
		log.Fatalf("failed to read evaluation result: %v", err)
	}

	opts := exportOptions{
		OutputPath:   output,
		SummarySheet: summarySheet,
		RowsSheet:    rowsSheet,
	}

	if err := exportXLSX(res, opts); err != nil {
		log.Fatalf("failed to export xlsx: %v", err)
	}

	fmt.Printf("Exported %d metrics and %d rows to %s\n", len(res.Metrics), len(res.Rows), output)
}
