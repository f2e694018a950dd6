package domain

// AppSettings holds user-configurable behaviour.
type AppSettings struct {
	Extract ExtractSettings `json:"extract"`
	Storage StorageSettings `json:"storage"`
	OCR     OCRSettings     `json:"ocr"`
}

// ExtractSettings tunes field extraction.
type ExtractSettings struct {
	// DayFirst reads an ambiguous NN-NN-YYYY date as day-month-year.
	DayFirst bool `json:"day_first"`
}

// StorageSettings selects where saved records go.
type StorageSettings struct {
	// CSVPath is the tabular store records are appended to.
	// Empty disables the CSV sink.
	CSVPath string `json:"csv_path"`

	// SQLite enables the SQLite scan store.
	SQLite bool `json:"sqlite"`
}

// OCRSettings configures the external OCR command.
type OCRSettings struct {
	// Command is the OCR executable, e.g. tesseract.
	Command string `json:"command" validate:"required"`

	// Rate is the sustained number of OCR invocations per second.
	Rate float64 `json:"rate" validate:"gt=0"`

	// Burst is the number of invocations allowed back to back.
	Burst int `json:"burst" validate:"gt=0"`
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Extract: ExtractSettings{DayFirst: true},
		Storage: StorageSettings{CSVPath: "patients.csv", SQLite: true},
		OCR:     OCRSettings{Command: "tesseract", Rate: 2, Burst: 2},
	}
}
