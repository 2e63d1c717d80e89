package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/climetrics/scenreport/internal/analysis"
	"github.com/climetrics/scenreport/internal/dataset"
	apperrors "github.com/climetrics/scenreport/internal/errors"
)

// Sheet names of the exported workbook.
const (
	SheetScenarios  = "Scenarios"
	SheetStatistics = "Statistics"
	SheetNPV        = "CarbonPriceNPV"
	SheetRatios     = "PairedRatios"
	SheetExclusions = "Exclusions"
)

// WriteWorkbook writes the full results workbook for human consumption.
func WriteWorkbook(path string, frame *dataset.Frame, result *analysis.Result) error {
	f := excelize.NewFile()
	defer apperrors.SafeClose(f, "report workbook")

	f.SetSheetName("Sheet1", SheetScenarios)
	writeScenarioSheet(f, frame)

	if _, err := f.NewSheet(SheetStatistics); err != nil {
		return apperrors.NewIOError("failed to create statistics sheet", err)
	}
	writeStatisticsSheet(f, result.Stats)

	if _, err := f.NewSheet(SheetNPV); err != nil {
		return apperrors.NewIOError("failed to create NPV sheet", err)
	}
	writeNPVSheet(f, result.NPVs)

	if _, err := f.NewSheet(SheetRatios); err != nil {
		return apperrors.NewIOError("failed to create ratios sheet", err)
	}
	writeRatioSheet(f, result)

	if _, err := f.NewSheet(SheetExclusions); err != nil {
		return apperrors.NewIOError("failed to create exclusions sheet", err)
	}
	writeExclusionSheet(f, result)

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to save workbook %s", path), err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, header := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, col+"1", header)
		f.SetColWidth(sheet, col, col, 18)
	}
}

func writeScenarioSheet(f *excelize.File, frame *dataset.Frame) {
	writeHeader(f, SheetScenarios, []string{"Model", "Scenario", "Category", "Target", "Vetted"})

	for i, key := range frame.Scenarios() {
		meta, _ := frame.MetaOf(key)
		row := i + 2
		f.SetCellValue(SheetScenarios, fmt.Sprintf("A%d", row), key.Model)
		f.SetCellValue(SheetScenarios, fmt.Sprintf("B%d", row), key.Scenario)
		f.SetCellValue(SheetScenarios, fmt.Sprintf("C%d", row), meta.Category)
		f.SetCellValue(SheetScenarios, fmt.Sprintf("D%d", row), meta.Target)
		f.SetCellValue(SheetScenarios, fmt.Sprintf("E%d", row), meta.Vetted)
	}
}

func writeStatisticsSheet(f *excelize.File, stats []analysis.SummaryRow) {
	writeHeader(f, SheetStatistics, []string{"Category", "Variable", "Year", "N",
		"Mean", "Std", "Min", "Q25", "Median", "Q75", "Max"})

	for i, s := range stats {
		row := i + 2
		f.SetCellValue(SheetStatistics, fmt.Sprintf("A%d", row), s.Category)
		f.SetCellValue(SheetStatistics, fmt.Sprintf("B%d", row), s.Variable)
		f.SetCellValue(SheetStatistics, fmt.Sprintf("C%d", row), s.Year)
		f.SetCellValue(SheetStatistics, fmt.Sprintf("D%d", row), s.N)
		f.SetCellValue(SheetStatistics, fmt.Sprintf("E%d", row), s.Mean)
		f.SetCellValue(SheetStatistics, fmt.Sprintf("F%d", row), s.Std)
		f.SetCellValue(SheetStatistics, fmt.Sprintf("G%d", row), s.Min)
		f.SetCellValue(SheetStatistics, fmt.Sprintf("H%d", row), s.Q25)
		f.SetCellValue(SheetStatistics, fmt.Sprintf("I%d", row), s.Median)
		f.SetCellValue(SheetStatistics, fmt.Sprintf("J%d", row), s.Q75)
		f.SetCellValue(SheetStatistics, fmt.Sprintf("K%d", row), s.Max)
	}
}

func writeNPVSheet(f *excelize.File, npvs []analysis.NPVResult) {
	writeHeader(f, SheetNPV, []string{"Model", "Scenario", "Category", "Target",
		"NPV Price", "Raw Mean", "First Year", "Last Year"})

	for i, n := range npvs {
		row := i + 2
		f.SetCellValue(SheetNPV, fmt.Sprintf("A%d", row), n.Key.Model)
		f.SetCellValue(SheetNPV, fmt.Sprintf("B%d", row), n.Key.Scenario)
		f.SetCellValue(SheetNPV, fmt.Sprintf("C%d", row), n.Category)
		f.SetCellValue(SheetNPV, fmt.Sprintf("D%d", row), n.Target)
		f.SetCellValue(SheetNPV, fmt.Sprintf("E%d", row), n.NPV)
		f.SetCellValue(SheetNPV, fmt.Sprintf("F%d", row), n.RawMean)
		f.SetCellValue(SheetNPV, fmt.Sprintf("G%d", row), n.FirstYear)
		f.SetCellValue(SheetNPV, fmt.Sprintf("H%d", row), n.LastYear)
	}
}

func writeRatioSheet(f *excelize.File, result *analysis.Result) {
	writeHeader(f, SheetRatios, []string{"Model", "Scenario 2C", "Scenario 1.5C",
		"Category", "NPV 2C", "NPV 1.5C", "Ratio"})

	row := 2
	for _, p := range result.Pairs {
		f.SetCellValue(SheetRatios, fmt.Sprintf("A%d", row), p.Model)
		f.SetCellValue(SheetRatios, fmt.Sprintf("B%d", row), p.ScenarioHigh)
		f.SetCellValue(SheetRatios, fmt.Sprintf("C%d", row), p.ScenarioLow)
		f.SetCellValue(SheetRatios, fmt.Sprintf("D%d", row), p.Category)
		f.SetCellValue(SheetRatios, fmt.Sprintf("E%d", row), p.NPVHigh)
		f.SetCellValue(SheetRatios, fmt.Sprintf("F%d", row), p.NPVLow)
		f.SetCellValue(SheetRatios, fmt.Sprintf("G%d", row), p.Ratio)
		row++
	}

	// Summary block below the pairs.
	row++
	f.SetCellValue(SheetRatios, fmt.Sprintf("A%d", row), "Category")
	f.SetCellValue(SheetRatios, fmt.Sprintf("B%d", row), "N")
	f.SetCellValue(SheetRatios, fmt.Sprintf("C%d", row), "Mean")
	f.SetCellValue(SheetRatios, fmt.Sprintf("D%d", row), "Min")
	f.SetCellValue(SheetRatios, fmt.Sprintf("E%d", row), "Q25")
	f.SetCellValue(SheetRatios, fmt.Sprintf("F%d", row), "Median")
	f.SetCellValue(SheetRatios, fmt.Sprintf("G%d", row), "Q75")
	f.SetCellValue(SheetRatios, fmt.Sprintf("H%d", row), "Max")
	for _, s := range result.Ratios {
		row++
		f.SetCellValue(SheetRatios, fmt.Sprintf("A%d", row), s.Category)
		f.SetCellValue(SheetRatios, fmt.Sprintf("B%d", row), s.N)
		f.SetCellValue(SheetRatios, fmt.Sprintf("C%d", row), s.Mean)
		f.SetCellValue(SheetRatios, fmt.Sprintf("D%d", row), s.Min)
		f.SetCellValue(SheetRatios, fmt.Sprintf("E%d", row), s.Q25)
		f.SetCellValue(SheetRatios, fmt.Sprintf("F%d", row), s.Median)
		f.SetCellValue(SheetRatios, fmt.Sprintf("G%d", row), s.Q75)
		f.SetCellValue(SheetRatios, fmt.Sprintf("H%d", row), s.Max)
	}
}

func writeExclusionSheet(f *excelize.File, result *analysis.Result) {
	writeHeader(f, SheetExclusions, []string{"Model", "Scenario", "Reason", "Kind"})

	row := 2
	for _, e := range result.Exclusions {
		f.SetCellValue(SheetExclusions, fmt.Sprintf("A%d", row), e.Key.Model)
		f.SetCellValue(SheetExclusions, fmt.Sprintf("B%d", row), e.Key.Scenario)
		f.SetCellValue(SheetExclusions, fmt.Sprintf("C%d", row), e.Reason)
		f.SetCellValue(SheetExclusions, fmt.Sprintf("D%d", row), "series")
		row++
	}
	for _, d := range result.Dropped {
		f.SetCellValue(SheetExclusions, fmt.Sprintf("A%d", row), d.Model)
		f.SetCellValue(SheetExclusions, fmt.Sprintf("B%d", row), d.ScenarioHigh)
		f.SetCellValue(SheetExclusions, fmt.Sprintf("C%d", row), d.Reason)
		f.SetCellValue(SheetExclusions, fmt.Sprintf("D%d", row), "pair")
		row++
	}
}
