package services

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/dentract/internal/core/domain"
	"github.com/custodia-labs/dentract/internal/core/ports/driven"
	"github.com/custodia-labs/dentract/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDayFirst   = "extract.day_first"
	keyCSVPath    = "storage.csv_path"
	keySQLite     = "storage.sqlite"
	keyOCRCommand = "ocr.command"
	keyOCRRate    = "ocr.rate"
	keyOCRBurst   = "ocr.burst"
)

// settingKeys lists the keys Set accepts, in display order.
var settingKeys = []string{
	keyDayFirst,
	keyCSVPath,
	keySQLite,
	keyOCRCommand,
	keyOCRRate,
	keyOCRBurst,
}

// settingsValidator reports failures by config key, e.g. "ocr.rate".
var settingsValidator = newSettingsValidator()

func newSettingsValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateSettings checks settings against their validate tags.
func validateSettings(settings *domain.AppSettings) error {
	err := settingsValidator.Struct(settings)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		// Namespace is "AppSettings.ocr.rate".
		_, key, _ := strings.Cut(fe.Namespace(), ".")
		if fe.Tag() == "required" {
			problems = append(problems, key+" is required")
			continue
		}
		problems = append(problems, fmt.Sprintf("%s must be %s %s", key, fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Extract: domain.ExtractSettings{
			DayFirst: s.getBool(keyDayFirst, defaults.Extract.DayFirst),
		},
		Storage: domain.StorageSettings{
			// Empty is a valid value: it disables the CSV sink.
			CSVPath: s.getStringOrEmpty(keyCSVPath, defaults.Storage.CSVPath),
			SQLite:  s.getBool(keySQLite, defaults.Storage.SQLite),
		},
		OCR: domain.OCRSettings{
			Command: s.getString(keyOCRCommand, defaults.OCR.Command),
			Rate:    s.getFloat(keyOCRRate, defaults.OCR.Rate),
			Burst:   s.getInt(keyOCRBurst, defaults.OCR.Burst),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	values := map[string]any{
		keyDayFirst:   settings.Extract.DayFirst,
		keyCSVPath:    settings.Storage.CSVPath,
		keySQLite:     settings.Storage.SQLite,
		keyOCRCommand: settings.OCR.Command,
		keyOCRRate:    settings.OCR.Rate,
		keyOCRBurst:   settings.OCR.Burst,
	}
	for _, key := range settingKeys {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	return s.configStore.Save()
}

// Set parses value according to the key's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case keyDayFirst:
		settings.Extract.DayFirst, err = strconv.ParseBool(value)
	case keyCSVPath:
		settings.Storage.CSVPath = value
	case keySQLite:
		settings.Storage.SQLite, err = strconv.ParseBool(value)
	case keyOCRCommand:
		settings.OCR.Command = value
	case keyOCRRate:
		settings.OCR.Rate, err = strconv.ParseFloat(value, 64)
	case keyOCRBurst:
		settings.OCR.Burst, err = strconv.Atoi(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	return s.Save(settings)
}

// Keys returns the config keys Set accepts.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStringOrEmpty(key, defaultVal string) string {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
