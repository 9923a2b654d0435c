package excel

// RawSheet is one sheet or CSV file as read from disk, before type inference.
type RawSheet struct {
	Headers []string   // Column headers, trimmed
	Rows    [][]string // Data rows, possibly ragged
}

// FileType is the on-disk format of a statistics file.
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)
