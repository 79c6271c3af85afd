package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dosanma1/vncard-cli/internal/config"
	"github.com/dosanma1/vncard-cli/internal/generator"
	"github.com/dosanma1/vncard-cli/internal/history"
	"github.com/dosanma1/vncard-cli/internal/logger"
	"github.com/dosanma1/vncard-cli/internal/names"
	"github.com/dosanma1/vncard-cli/internal/output"
	"github.com/dosanma1/vncard-cli/internal/pipeline"
	"github.com/dosanma1/vncard-cli/internal/render"
	"github.com/dosanma1/vncard-cli/internal/source"
	"github.com/dosanma1/vncard-cli/internal/ui"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"g"},
	Short:   "Render name cards for new names",
	Long: `Acquires N names that are not in the history log, renders each onto the
template and records them.

When several sources are enabled the highest-priority one wins:
gemini > names file > api url > auto api > namefake > offline.

Examples:
  vncard generate -n 10
  vncard g -n 5 --names-file students_1000.txt --pad
  vncard g -n 3 --gemini --seed 42`,
	RunE: runGenerate,
}

var (
	genCount         int
	genTemplate      string
	genOutDir        string
	genHistory       string
	genSeed          int64
	genPad           bool
	genNamesFile     string
	genAPIURL        string
	genAutoAPI       bool
	genEndpointsFile string
	genNamefake      bool
	genGemini        bool
	genGeminiKey     string
	genGeminiModel   string
	genDryRun        bool
	genNoProgress    bool
)

func init() {
	f := generateCmd.Flags()
	f.IntVarP(&genCount, "num", "n", config.DefaultCount, "Number of names to generate")
	f.StringVarP(&genTemplate, "template", "t", config.DefaultTemplate, "Template image")
	f.StringVarP(&genOutDir, "out", "o", config.DefaultOutputDir, "Output directory")
	f.StringVar(&genHistory, "history", config.DefaultHistory, "History log")
	f.Int64Var(&genSeed, "seed", 0, "Random seed for a reproducible run")
	f.BoolVar(&genPad, "pad", false, "Fill a source shortfall with offline names")
	f.StringVar(&genNamesFile, "names-file", "", "Word list, one name per line")
	f.StringVar(&genAPIURL, "api-url", "", "HTTP endpoint returning names")
	f.BoolVar(&genAutoAPI, "auto-api", false, "Try the endpoints listed in --endpoints-file")
	f.StringVar(&genEndpointsFile, "endpoints-file", config.DefaultEndpointsFile, "Endpoint list for --auto-api")
	f.BoolVar(&genNamefake, "namefake", false, "Use api.namefake.com")
	f.BoolVar(&genGemini, "gemini", false, "Use the Gemini API")
	f.StringVar(&genGeminiKey, "gemini-key", "", "Gemini API key (default from GEMINI_API_KEY)")
	f.StringVar(&genGeminiModel, "gemini-model", source.DefaultGeminiModel, "Gemini model")
	f.BoolVar(&genDryRun, "dry-run", false, "Print the names and file ids without rendering")
	f.BoolVar(&genNoProgress, "no-progress", false, "Hide the progress bar")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyGenerateFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	gen, plan, err := buildGenerator(cmd, cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	res, err := gen.Generate(ctx, generator.Options{Plan: plan, DryRun: genDryRun})
	printResult(out, res, genDryRun)
	if err != nil {
		if errors.Is(err, pipeline.ErrInsufficientNames) && !cfg.Pad {
			ui.Hintf(out, "Re-run with --pad to fill the gap with offline names.")
		}
		return err
	}
	if !genDryRun {
		ui.Successf(out, "Rendered %d image(s) into %s", res.Rendered, cfg.Output.Dir)
	}
	return nil
}

// applyGenerateFlags overlays the flags the user actually set.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("num") {
		cfg.Count = genCount
	}
	if f.Changed("template") {
		cfg.Template = genTemplate
	}
	if f.Changed("out") {
		cfg.Output.Dir = genOutDir
	}
	if f.Changed("history") {
		cfg.History = genHistory
	}
	if f.Changed("seed") {
		seed := genSeed
		cfg.Seed = &seed
	}
	if f.Changed("pad") {
		cfg.Pad = genPad
	}
	if f.Changed("names-file") {
		cfg.Sources.NamesFile = genNamesFile
	}
	if f.Changed("api-url") {
		cfg.Sources.APIURL = genAPIURL
	}
	if f.Changed("auto-api") {
		cfg.Sources.AutoAPI = genAutoAPI
	}
	if f.Changed("endpoints-file") {
		cfg.Sources.EndpointsFile = genEndpointsFile
	}
	if f.Changed("namefake") {
		cfg.Sources.Namefake = genNamefake
	}
	if f.Changed("gemini") {
		cfg.Sources.Gemini = genGemini
	}
	if f.Changed("gemini-key") {
		cfg.Sources.GeminiAPIKey = genGeminiKey
	}
	if f.Changed("gemini-model") {
		cfg.Sources.GeminiModel = genGeminiModel
	}
}

// buildGenerator wires the selected source, renderer and sinks.
func buildGenerator(cmd *cobra.Command, cfg *config.Config, log *slog.Logger) (*generator.Generator, pipeline.Plan, error) {
	ctx := cmd.Context()
	rnd := names.NewRand(cfg.Seed)
	synth := names.NewSynthesizer(rnd)
	offline := source.NewOffline(synth)

	entry := source.Select(cfg.Selection())
	adapter, err := source.New(entry.Kind, source.Deps{
		Synth:         synth,
		NamesFile:     cfg.Sources.NamesFile,
		APIURL:        cfg.Sources.APIURL,
		EndpointsFile: cfg.Sources.EndpointsFile,
		Gemini: source.GeminiOptions{
			APIKey: cfg.Sources.GeminiAPIKey,
			Model:  cfg.Sources.GeminiModel,
		},
		HTTPClient: source.NewHTTPClient(source.DefaultHTTPTimeout),
	})
	if err != nil {
		return nil, pipeline.Plan{}, fmt.Errorf("failed to create %s source: %w", entry.Kind, err)
	}
	log.DebugContext(ctx, "source selected", logger.Source(string(entry.Kind)))

	sink := output.NewDirSink(cfg.Output.Dir)
	deps := generator.Deps{
		Pipeline: pipeline.New(offline, rnd, log),
		History:  history.New(cfg.History),
		Sink:     sink,
		Exists:   sink.Exists,
		Logger:   log,
	}

	if !genDryRun {
		r, err := render.New(render.Options{
			Template:  cfg.Template,
			FontPaths: cfg.Render.Fonts,
			BaseSize:  cfg.Render.BaseSize,
			Box:       cfg.Render.Box,
		})
		if err != nil {
			return nil, pipeline.Plan{}, fmt.Errorf("failed to load template: %w", err)
		}
		log.DebugContext(ctx, "renderer ready", slog.String("font", r.FontName()))
		deps.Renderer = r

		if s3 := cfg.Output.S3; s3.Enabled() {
			mirror, err := output.NewS3Sink(ctx, s3.SinkConfig())
			if err != nil {
				return nil, pipeline.Plan{}, fmt.Errorf("failed to create s3 mirror: %w", err)
			}
			deps.Mirrors = append(deps.Mirrors, mirror)
		}

		if !genNoProgress {
			w := cmd.ErrOrStderr()
			deps.Progress = func(total int) generator.Progress {
				return ui.NewProgress(w, total, "Rendering")
			}
		}
	}

	plan := pipeline.Plan{
		Count:   cfg.Count,
		Kind:    entry.Kind,
		Adapter: adapter,
		Pad:     cfg.Pad,
	}
	return generator.New(deps), plan, nil
}

func printResult(w io.Writer, res generator.Result, dryRun bool) {
	for _, rec := range res.Records {
		switch {
		case dryRun:
			fmt.Fprintf(w, "%s\t%s%s\n", rec.Name, rec.ID, output.Ext)
		case rec.Err != nil:
			ui.Errorf(w, "%s: %v", rec.Name, rec.Err)
		default:
			fmt.Fprintf(w, "%s %s -> %s\n", ui.IconCard, rec.Name, rec.Path)
		}
	}
}
