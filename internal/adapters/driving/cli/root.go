package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dentract/internal/core/ports/driving"
	"github.com/custodia-labs/dentract/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services the commands run against. Set by SetServices or by the
// bootstrap before a command runs.
var (
	intakeService   driving.IntakeService
	recordService   driving.RecordService
	settingsService driving.SettingsService
)

// Services bundles the driving ports used by the commands.
type Services struct {
	Intake   driving.IntakeService
	Records  driving.RecordService
	Settings driving.SettingsService

	// Close releases stores opened for the services. May be nil.
	Close func() error
}

// Bootstrap builds services for the given config directory.
// An empty directory means the default location.
type Bootstrap func(configDir string) (*Services, error)

var (
	bootstrap     Bootstrap
	closeServices func() error
)

// annotationOffline marks commands that run without services.
const annotationOffline = "offline"

var rootCmd = &cobra.Command{
	Use:   "dentract",
	Short: "Extract patient records from scanned intake forms",
	Long: `dentract reads OCR text from scanned dental and medical intake forms
and extracts a structured patient record: name, age, address, history,
complaint, diagnosis, procedure, medications, insurance, email, phone
and visit date.

Records can be appended to a CSV file and a local SQLite store, listed,
exported to a spreadsheet, or served to AI assistants over MCP.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config-dir", "", "Config directory (default ~/.dentract)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function used to build services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices sets the services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	intakeService = s.Intake
	recordService = s.Records
	settingsService = s.Settings
	closeServices = s.Close
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer func() {
		if closeServices == nil {
			return
		}
		if err := closeServices(); err != nil {
			logger.Warn("closing stores: %v", err)
		}
		closeServices = nil
	}()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("getting verbose flag: %w", err)
	}
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[annotationOffline] == "true" {
		return nil
	}

	configDir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return fmt.Errorf("getting config-dir flag: %w", err)
	}

	services, err := bootstrap(configDir)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	return nil
}
