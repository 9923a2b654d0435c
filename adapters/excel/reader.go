package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cricdash/domain/table"
	"cricdash/internal/errors"
	"cricdash/internal/logging"

	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// DataReader reads one CSV or XLSX file.
type DataReader struct {
	filePath string
	fileType FileType
	logger   *logging.Logger
}

// NewDataReader creates a reader for filePath. Files ending in .xlsx are read
// with excelize, everything else as CSV.
func NewDataReader(filePath string, logger *logging.Logger) *DataReader {
	fileType := FileTypeCSV
	if strings.EqualFold(filepath.Ext(filePath), ".xlsx") {
		fileType = FileTypeXLSX
	}
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: logger.With("DataReader")}
}

// FileType reports the format the reader will parse.
func (r *DataReader) FileType() FileType {
	return r.fileType
}

// ReadSheet reads the header row and data rows of the file.
func (r *DataReader) ReadSheet() (*RawSheet, error) {
	r.logger.Debug("reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); err != nil {
		return nil, fmt.Errorf("%s file not found: %w", strings.ToUpper(string(r.fileType)), err)
	}

	var rows [][]string
	var err error
	start := time.Now()
	switch r.fileType {
	case FileTypeXLSX:
		rows, err = r.readExcelRows()
	default:
		rows, err = r.readCSVRows()
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", filepath.Base(r.filePath), float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header row", filepath.Base(r.filePath))
	}
	return r.processRows(rows), nil
}

// readExcelRows reads the first sheet of the workbook.
func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(r.filePath))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()
	return readCSV(file)
}

func readCSV(in io.Reader) ([][]string, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// processRows splits the header row off and trims every header and cell.
// Fully empty trailing rows, which spreadsheets tend to leave behind, are
// dropped.
func (r *DataReader) processRows(rows [][]string) *RawSheet {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		if i == 0 {
			header = strings.TrimPrefix(header, utf8BOM)
		}
		headers[i] = strings.TrimSpace(header)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(row))
		blank := true
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
			if cells[j] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		data = append(data, cells)
	}

	r.logger.Debug("%s processed (%d columns, %d rows)", filepath.Base(r.filePath), len(headers), len(data))
	return &RawSheet{Headers: headers, Rows: data}
}

// Source loads statistics files through DataReader. It implements
// ports.TableSource.
type Source struct {
	logger *logging.Logger
}

// NewSource creates a table source.
func NewSource(logger *logging.Logger) *Source {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &Source{logger: logger}
}

// Load reads path and infers a kind for every column.
func (s *Source) Load(ctx context.Context, name, path string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sheet, err := NewDataReader(path, s.logger).ReadSheet()
	if err != nil {
		return nil, errors.LoadFailed(path, err)
	}
	tbl, err := table.FromStrings(name, sheet.Headers, sheet.Rows)
	if err != nil {
		return nil, errors.LoadFailed(path, err)
	}
	s.logger.With("Source").Info("loaded %q: %d rows, %d columns", name, tbl.Len(), len(tbl.Columns()))
	return tbl, nil
}
