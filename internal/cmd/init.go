package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dosanma1/vncard-cli/internal/config"
	"github.com/dosanma1/vncard-cli/internal/source"
	"github.com/dosanma1/vncard-cli/internal/ui"
	"github.com/dosanma1/vncard-cli/pkg/xos"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create vncard.yaml interactively",
	Long: `Asks for the template, output locations and name source, then writes the
answers to vncard.yaml. An existing file is kept as vncard.yaml.bak.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var initYes bool

// newPrompter is replaced in tests.
var newPrompter = func(cmd *cobra.Command) ui.Prompter {
	return ui.NewPrompter(nil, nil)
}

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Write the defaults without prompting")
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := config.Default()

	if !initYes {
		fmt.Fprintln(out, ui.TitleStyle.Render("vncard setup"))
		if err := askConfig(newPrompter(cmd), cfg, xos.Exists(configPath)); err != nil {
			if errors.Is(err, ui.ErrCancelled) {
				ui.Warnf(out, "Setup cancelled, nothing written")
				return nil
			}
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(configPath); err != nil {
		return err
	}
	ui.Successf(out, "Wrote %s", configPath)
	return nil
}

// askConfig fills cfg from the prompter. exists asks for overwrite consent.
func askConfig(p ui.Prompter, cfg *config.Config, exists bool) error {
	var err error
	if exists {
		ok, err := p.AskConfirm(fmt.Sprintf("%s exists. Overwrite", configPath), false)
		if err != nil {
			return err
		}
		if !ok {
			return ui.ErrCancelled
		}
	}

	if cfg.Template, err = p.AskText("Template image", cfg.Template); err != nil {
		return err
	}
	if cfg.Output.Dir, err = p.AskText("Output directory", cfg.Output.Dir); err != nil {
		return err
	}
	if cfg.History, err = p.AskText("History log", cfg.History); err != nil {
		return err
	}
	if cfg.Count, err = p.AskInt("Names per run", cfg.Count); err != nil {
		return err
	}

	choices := make([]string, 0, len(source.Precedence))
	for _, e := range source.Precedence {
		choices = append(choices, fmt.Sprintf("%s - %s", e.Kind, e.Description))
	}
	i, _, err := p.AskSelect("Name source", choices)
	if err != nil {
		return err
	}

	switch source.Precedence[i].Kind {
	case source.KindGemini:
		cfg.Sources.Gemini = true
		if cfg.Sources.GeminiModel, err = p.AskText("Gemini model", cfg.Sources.GeminiModel); err != nil {
			return err
		}
	case source.KindFile:
		if cfg.Sources.NamesFile, err = p.AskText("Names file", config.DefaultNamesFile); err != nil {
			return err
		}
	case source.KindURL:
		if cfg.Sources.APIURL, err = p.AskText("API URL", ""); err != nil {
			return err
		}
	case source.KindAuto:
		cfg.Sources.AutoAPI = true
		if cfg.Sources.EndpointsFile, err = p.AskText("Endpoints file", cfg.Sources.EndpointsFile); err != nil {
			return err
		}
	case source.KindNamefake:
		cfg.Sources.Namefake = true
	}

	if source.Precedence[i].Kind != source.KindOffline {
		if cfg.Pad, err = p.AskConfirm("Pad shortfalls with offline names", true); err != nil {
			return err
		}
	}
	return nil
}
