package excel

// ReaderConfig controls how a worksheet becomes a table
type ReaderConfig struct {
	Sheet      string   `json:"sheet"`       // empty means the first sheet
	NullValues []string `json:"null_values"` // cells read as null, compared after trimming
}

// DefaultReaderConfig treats empty cells and common null markers as null
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		NullValues: []string{"", "NULL", "null", "NA", "N/A"},
	}
}
