package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-schemagen/internal/sink"
	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/emitters/dart"
	"github.com/goliatone/go-schemagen/pkg/emitters/graphql"
	"github.com/goliatone/go-schemagen/pkg/emitters/openapi"
	"github.com/goliatone/go-schemagen/pkg/orchestrator"
	"github.com/goliatone/go-schemagen/pkg/schema"
)

const defaultEmitter = "dart"

var errAborted = errors.New("aborted")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "schemagen",
		Usage: "compile YAML schema documents into typed models with validation",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			generateCommand(),
			inspectCommand(),
			emittersCommand(),
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen"},
		Usage:     "generate output units from schema documents",
		ArgsUsage: "<document|directory|url>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   "gen",
				Usage:   "output directory for generated files",
			},
			&cli.StringFlag{
				Name:    "emitter",
				Aliases: []string{"e"},
				Usage:   "emitter to use (defaults to " + defaultEmitter + ")",
			},
			&cli.StringFlag{
				Name:    "package",
				Aliases: []string{"p"},
				Usage:   "package identifier qualifying imports between units",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "title for document-style outputs",
			},
			&cli.BoolFlag{
				Name:    "overwrite",
				Aliases: []string{"f"},
				Usage:   "replace existing output files without asking",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "assume yes on prompts",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "pick the emitter interactively",
			},
			&cli.BoolFlag{
				Name:  "keep-going",
				Usage: "skip documents that fail instead of stopping",
			},
		},
		Action: generateAction,
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print the resolved type graph of each document as JSON",
		ArgsUsage: "<document|directory|url>...",
		Action:    inspectAction,
	}
}

func emittersCommand() *cli.Command {
	return &cli.Command{
		Name:   "emitters",
		Usage:  "list the available emitters",
		Action: emittersAction,
	}
}

func generateAction(c *cli.Context) error {
	logger, err := buildLogger(c.Bool("verbose"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	inputs, err := collectInputs(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("no schema documents found; pass .yaml files, directories, or URLs")
	}

	registry, err := buildRegistry()
	if err != nil {
		return err
	}

	emitterName := c.String("emitter")
	if emitterName == "" && c.Bool("interactive") {
		emitterName, err = pickEmitter(registry)
		if err != nil {
			return err
		}
	}
	if emitterName == "" {
		emitterName = defaultEmitter
	}
	emitter, err := registry.Get(emitterName)
	if err != nil {
		return err
	}

	orch := orchestrator.New(orchestrator.WithRegistry(registry))
	options := emit.Options{
		Package: c.String("package"),
		Title:   c.String("title"),
	}

	// Units from every document land in one directory, so identical names are
	// tolerated only when the bodies match (the shared runtime units repeat
	// per document).
	merged := make(map[string]emit.Unit)
	sourceOf := make(map[string]string)
	var order []string

	for _, in := range inputs {
		units, err := orch.Generate(c.Context, orchestrator.Request{
			Source:  in.source,
			Emitter: emitterName,
			Options: options,
		})
		if err != nil {
			if c.Bool("keep-going") {
				logger.Warn("skipping document", zap.String("document", in.display), zap.Error(err))
				continue
			}
			return fmt.Errorf("generate %s: %w", in.display, err)
		}
		logger.Debug("compiled document", zap.String("document", in.display), zap.Int("units", len(units)))

		for _, unit := range units {
			prior, ok := merged[unit.Name]
			if !ok {
				merged[unit.Name] = unit
				sourceOf[unit.Name] = in.display
				order = append(order, unit.Name)
				continue
			}
			if !bytes.Equal(prior.Body, unit.Body) {
				return fmt.Errorf("unit %q from %s conflicts with the one from %s", unit.Name, in.display, sourceOf[unit.Name])
			}
		}
	}

	if len(order) == 0 {
		return errors.New("no units were generated")
	}

	outDir := c.String("out")
	overwrite := c.Bool("overwrite")
	if !overwrite {
		granted, err := resolveCollisions(outDir, emitter.FileExtension(), order, c.Bool("yes"))
		if err != nil {
			return err
		}
		overwrite = granted
	}

	out, err := sink.NewDirectory(outDir,
		sink.WithExtension(emitter.FileExtension()),
		sink.WithOverwrite(overwrite),
	)
	if err != nil {
		return err
	}

	for _, name := range order {
		if err := out.Write(c.Context, merged[name]); err != nil {
			return err
		}
		logger.Debug("wrote unit", zap.String("file", out.Path(name)))
	}

	fmt.Printf("Generated %d file(s) in %s\n", len(order), outDir)
	return nil
}

func inspectAction(c *cli.Context) error {
	inputs, err := collectInputs(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("no schema documents found; pass .yaml files, directories, or URLs")
	}

	orch := orchestrator.New()
	for _, in := range inputs {
		graph, err := orch.Compile(c.Context, orchestrator.Request{Source: in.source})
		if err != nil {
			return fmt.Errorf("inspect %s: %w", in.display, err)
		}
		data, err := json.MarshalIndent(graph, "", "  ")
		if err != nil {
			return fmt.Errorf("inspect %s: %w", in.display, err)
		}
		if len(inputs) > 1 {
			fmt.Printf("// %s\n", in.display)
		}
		fmt.Println(string(data))
	}
	return nil
}

func emittersAction(c *cli.Context) error {
	registry, err := buildRegistry()
	if err != nil {
		return err
	}
	for _, name := range registry.List() {
		emitter := registry.MustGet(name)
		marker := "  "
		if name == defaultEmitter {
			marker = "* "
		}
		fmt.Printf("%s%-10s %-28s %s\n", marker, name, emitter.ContentType(), emitter.FileExtension())
	}
	return nil
}

func buildRegistry() (*emit.Registry, error) {
	registry := emit.NewRegistry()
	dartEmitter, err := dart.New()
	if err != nil {
		return nil, fmt.Errorf("configure dart emitter: %w", err)
	}
	registry.MustRegister(dartEmitter)
	registry.MustRegister(openapi.New())
	registry.MustRegister(graphql.New())
	return registry, nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

type input struct {
	display string
	source  schema.Source
}

// collectInputs expands the positional arguments into document sources:
// files and URLs pass through, directories are walked for .yaml/.yml files.
func collectInputs(args []string) ([]input, error) {
	var inputs []input
	seen := make(map[string]bool)

	add := func(display string, source schema.Source) {
		if seen[display] {
			return
		}
		seen[display] = true
		inputs = append(inputs, input{display: display, source: source})
	}

	for _, arg := range args {
		trimmed := strings.TrimSpace(arg)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
			add(trimmed, schema.SourceFromURL(trimmed))
			continue
		}

		info, err := os.Stat(trimmed)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", trimmed, err)
		}
		if !info.IsDir() {
			add(trimmed, schema.SourceFromFile(trimmed))
			continue
		}

		err = filepath.WalkDir(trimmed, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isSchemaFile(path) {
				return nil
			}
			add(path, schema.SourceFromFile(path))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", trimmed, err)
		}
	}
	return inputs, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// resolveCollisions reports whether writing may replace files that already
// exist in the output directory, asking the user unless --yes was given.
func resolveCollisions(dir, extension string, names []string, assumeYes bool) (bool, error) {
	probe, err := sink.NewDirectory(dir, sink.WithExtension(extension))
	if err != nil {
		return false, err
	}

	var existing []string
	for _, name := range names {
		if _, err := os.Stat(probe.Path(name)); err == nil {
			existing = append(existing, filepath.Base(probe.Path(name)))
		}
	}
	if len(existing) == 0 {
		return false, nil
	}
	if assumeYes {
		return true, nil
	}

	ok := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Overwrite %d existing file(s) in %s?", len(existing), dir),
		Help:    strings.Join(existing, ", "),
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, translateSurveyErr(err)
	}
	if !ok {
		return false, errAborted
	}
	return true, nil
}

func pickEmitter(registry *emit.Registry) (string, error) {
	options := registry.List()
	out := ""
	prompt := &survey.Select{
		Message: "Emitter to use:",
		Options: options,
		Default: defaultEmitter,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}
