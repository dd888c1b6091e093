// Package export serializes selected leads to CSV or Excel with a
// fixed column layout.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"leadgen-engine/internal/domain"
)

var ErrUnsupportedFormat = errors.New("export: unsupported format")

type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// ParseFormat accepts the two supported format names.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatExcel:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

func (f Format) MIMEType() string {
	if f == FormatExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

func (f Format) Filename() string {
	if f == FormatExcel {
		return "business_leads.xlsx"
	}
	return "business_leads.csv"
}

// Header is the fixed column order for both formats.
var Header = []string{"Name", "Email", "Phone", "Website", "Owner", "Location", "AI Insight"}

func row(l domain.Lead) []string {
	return []string{l.Name, l.Email, l.Phone, l.Website, l.OwnerName, l.Locality, l.Insight}
}

// Write renders the leads in the requested format: header plus one
// row per lead, in input order.
func Write(w io.Writer, format Format, leads []domain.Lead) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, leads)
	case FormatExcel:
		return writeExcel(w, leads)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func writeCSV(w io.Writer, leads []domain.Lead) error {
	// BOM keeps accented names intact when the file lands in Excel.
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, l := range leads {
		if err := cw.Write(row(l)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const sheetName = "Leads"

func writeExcel(w io.Writer, leads []domain.Lead) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	writeRow := func(n int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, n)
		if err != nil {
			return err
		}
		vals := make([]any, len(values))
		for i, v := range values {
			vals[i] = v
		}
		return f.SetSheetRow(sheetName, cell, &vals)
	}

	if err := writeRow(1, Header); err != nil {
		return err
	}
	for i, l := range leads {
		if err := writeRow(i+2, row(l)); err != nil {
			return err
		}
	}

	return f.Write(w)
}
