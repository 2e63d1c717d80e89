package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/climetrics/scenreport/internal/errors"
	"github.com/climetrics/scenreport/internal/types"
)

// Sheet names expected in a workbook dataset.
const (
	dataSheet = "data"
	metaSheet = "meta"
)

// The fixed identifier columns preceding the year columns in the data
// table: Model, Scenario, Region, Variable, Unit.
const idColumns = 5

// Load reads a pre-built dataset. Workbooks carry data and metadata as two
// sheets; CSV datasets need a metadata CSV alongside (metaPath).
func Load(path, metaPath string) (*Frame, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return loadWorkbook(path)
	case ".csv":
		return loadCSV(path, metaPath)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported dataset format %q", ext))
	}
}

func loadWorkbook(path string) (*Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewIOError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer apperrors.SafeClose(f, "dataset workbook")

	dataRows, err := f.GetRows(dataSheet)
	if err != nil {
		return nil, apperrors.NewIOError(fmt.Sprintf("missing %q sheet in %s", dataSheet, path), err)
	}
	metaRows, err := f.GetRows(metaSheet)
	if err != nil {
		return nil, apperrors.NewIOError(fmt.Sprintf("missing %q sheet in %s", metaSheet, path), err)
	}

	rows, err := parseDataTable(dataRows)
	if err != nil {
		return nil, err
	}
	meta, err := parseMetaTable(metaRows)
	if err != nil {
		return nil, err
	}
	return assemble(rows, meta)
}

func loadCSV(dataPath, metaPath string) (*Frame, error) {
	dataRows, err := readCSVFile(dataPath)
	if err != nil {
		return nil, err
	}
	metaRows, err := readCSVFile(metaPath)
	if err != nil {
		return nil, err
	}

	rows, err := parseDataTable(dataRows)
	if err != nil {
		return nil, err
	}
	meta, err := parseMetaTable(metaRows)
	if err != nil {
		return nil, err
	}
	return assemble(rows, meta)
}

func readCSVFile(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewIOError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer apperrors.SafeClose(file, path)

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewIOError(fmt.Sprintf("failed to read %s", path), err)
	}
	return records, nil
}

// parseDataTable turns the wide table into rows. The header is the five
// identifier columns followed by year columns.
func parseDataTable(table [][]string) ([]types.Row, error) {
	if len(table) == 0 {
		return nil, apperrors.NewValidationError("data table is empty")
	}

	header := table[0]
	if len(header) < idColumns+1 {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("data header needs %d identifier columns plus year columns, got %d columns", idColumns, len(header)))
	}

	years := make([]int, 0, len(header)-idColumns)
	for i, cell := range header[idColumns:] {
		year, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("data header column %d is not a year: %q", idColumns+i+1, cell))
		}
		years = append(years, year)
	}

	seen := make(map[string]struct{})
	rows := make([]types.Row, 0, len(table)-1)
	for ri, record := range table[1:] {
		if len(record) < idColumns {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("data row %d has %d columns, want at least %d", ri+2, len(record), idColumns))
		}

		row := types.Row{
			Key: types.ScenarioKey{
				Model:    strings.TrimSpace(record[0]),
				Scenario: strings.TrimSpace(record[1]),
			},
			Region:   strings.TrimSpace(record[2]),
			Variable: strings.TrimSpace(record[3]),
			Unit:     strings.TrimSpace(record[4]),
		}

		dupKey := row.Key.String() + "|" + row.Region + "|" + row.Variable
		if _, dup := seen[dupKey]; dup {
			return nil, apperrors.NewDataQualityError(
				fmt.Sprintf("duplicate data row for %s %s %s", row.Key, row.Region, row.Variable), row.Key.String())
		}
		seen[dupKey] = struct{}{}

		for ci, year := range years {
			col := idColumns + ci
			if col >= len(record) {
				break
			}
			cell := strings.TrimSpace(record[col])
			if cell == "" {
				continue
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, apperrors.NewDataQualityError(
					fmt.Sprintf("data row %d year %d is not numeric: %q", ri+2, year, cell), row.Key.String())
			}
			row.Points = append(row.Points, types.Point{Year: year, Value: value})
		}

		sort.Slice(row.Points, func(i, j int) bool { return row.Points[i].Year < row.Points[j].Year })
		rows = append(rows, row)
	}

	return rows, nil
}

// parseMetaTable reads Model, Scenario, Category, Target, Vetted records.
func parseMetaTable(table [][]string) (map[types.ScenarioKey]types.Meta, error) {
	if len(table) == 0 {
		return nil, apperrors.NewValidationError("meta table is empty")
	}
	if len(table[0]) < 5 {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("meta header needs 5 columns (Model, Scenario, Category, Target, Vetted), got %d", len(table[0])))
	}

	meta := make(map[types.ScenarioKey]types.Meta, len(table)-1)
	for ri, record := range table[1:] {
		if len(record) < 5 {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("meta row %d has %d columns, want 5", ri+2, len(record)))
		}

		key := types.ScenarioKey{
			Model:    strings.TrimSpace(record[0]),
			Scenario: strings.TrimSpace(record[1]),
		}
		if _, dup := meta[key]; dup {
			return nil, apperrors.NewDataQualityError(
				fmt.Sprintf("duplicate metadata for %s", key), key.String())
		}

		target := strings.TrimSpace(record[3])
		if target != types.TargetLow && target != types.TargetHigh {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("meta row %d has unknown target %q", ri+2, target))
		}

		meta[key] = types.Meta{
			Category: strings.TrimSpace(record[2]),
			Target:   target,
			Vetted:   parseBool(record[4]),
		}
	}

	return meta, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// assemble joins metadata onto the data rows. Rows without metadata are
// dropped and counted so the caller can log the loss.
func assemble(rows []types.Row, meta map[types.ScenarioKey]types.Meta) (*Frame, error) {
	frame := &Frame{Meta: meta}
	for _, r := range rows {
		if _, ok := meta[r.Key]; !ok {
			frame.DroppedNoMeta++
			continue
		}
		frame.Rows = append(frame.Rows, r)
	}
	return frame, nil
}

// MetaOnlyCount returns how many metadata records reference no data row.
func (f *Frame) MetaOnlyCount() int {
	withData := make(map[types.ScenarioKey]struct{})
	for _, r := range f.Rows {
		withData[r.Key] = struct{}{}
	}
	n := 0
	for key := range f.Meta {
		if _, ok := withData[key]; !ok {
			n++
		}
	}
	return n
}
