package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/dosanma1/vncard-cli/internal/config"
	"github.com/dosanma1/vncard-cli/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate vncard.yaml configuration",
	Long: `Validates the vncard.yaml configuration file against the JSON Schema and
checks the resolved settings, including VNCARD_* environment overrides.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s not found", configPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	fmt.Fprintf(out, "%s Validating %s...\n", ui.IconSearch, configPath)

	violations, err := config.ValidateSchema(data)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		ui.Errorf(out, "Validation failed with the following errors:")
		fmt.Fprintln(out)
		for i, v := range violations {
			fmt.Fprintf(out, "%d. %s\n", i+1, v.Description)
			fmt.Fprintf(out, "   Field: %s\n", v.Field)
			fmt.Fprintf(out, "   Type: %s\n\n", v.Type)
		}
		return fmt.Errorf("validation failed with %d errors", len(violations))
	}

	cfg, err := config.Resolve(configPath, true)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := os.Stat(cfg.Template); err != nil {
		ui.Warnf(out, "template %s is not readable: %v", cfg.Template, err)
	}

	ui.Successf(out, "%s is valid!", configPath)
	return nil
}
