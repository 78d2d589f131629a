package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"expensetally/summary"
)

// WriteXLSX exports totals to an Excel workbook with one sheet per
// grouping.
func WriteXLSX(path string, totals *summary.Totals) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeMethodSheet(f, "Payment methods", totals); err != nil {
		return err
	}
	if err := writeGroupSheet(f, "Days", "Day", totals.ByDay); err != nil {
		return err
	}
	if err := writeGroupSheet(f, "Types", "Type", totals.ByType); err != nil {
		return err
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeMethodSheet(f *excelize.File, sheet string, totals *summary.Totals) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	headers := []interface{}{"Payment method", "Entries", "Amount", "Share %"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}

	row := 2
	for _, g := range totals.ByPaymentMethod {
		share, _ := totals.ExpenseShare(g).Float64()
		if err := setRow(f, sheet, row, []interface{}{g.Key, g.Count, g.Amount, share}); err != nil {
			return err
		}
		row++
	}
	return setRow(f, sheet, row, []interface{}{"Total", "", totals.ExpenseTotal(), ""})
}

func writeGroupSheet(f *excelize.File, sheet, label string, groups []summary.Group) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	if err := setRow(f, sheet, 1, []interface{}{label, "Entries", "Amount"}); err != nil {
		return err
	}

	for i, g := range groups {
		if err := setRow(f, sheet, i+2, []interface{}{g.Key, g.Count, g.Amount}); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %q: %w", row, sheet, err)
	}
	return nil
}
