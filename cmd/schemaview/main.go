// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaview

// schemaview renders annotated schemas as navigable example documents.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/woozymasta/schemaview"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/schemaview"
	_buildTime string
)

// cliOptions describes schemaview CLI flags and subcommands.
type cliOptions struct {
	Verbose []bool `short:"v" long:"verbose" description:"Increase log verbosity (repeatable)"`

	Version  versionCommand  `command:"version" description:"Print version information"`
	Render   renderCommand   `command:"render" description:"Render schema as example document"`
	Sections sectionsCommand `command:"sections" description:"List documented section anchors"`
	Example  exampleCommand  `command:"example" description:"Generate example payload from schema"`
	Template templateCommand `command:"template" description:"Print built-in markdown or html template"`
}

// ioArgs holds optional input and output positional paths.
type ioArgs struct {
	Input  string `positional-arg-name:"input" description:"Input schema file path (optional; stdin when omitted)"`
	Output string `positional-arg-name:"output" description:"Output file path (optional; stdout when omitted)"`
}

// renderFlags groups layout presentation flags.
type renderFlags struct {
	Format       string `short:"f" long:"format" description:"Output format" choice:"text" choice:"markdown" choice:"html" default:"text"`
	Active       string `short:"a" long:"active" description:"Anchor of the active section (for example: server.port)"`
	Color        bool   `short:"c" long:"color" description:"Colorize text output and emit terminal hyperlinks"`
	Title        string `short:"T" long:"title" description:"Document title for markdown and html output" default:"schema example"`
	WrapWidth    int    `short:"w" long:"wrap" description:"Wrap width for plain text descriptions" default:"80"`
	TemplatePath string `short:"t" long:"template-file" description:"Path to custom markdown or html template (.gotmpl)"`
}

// renderCommand compiles schema and presents layout.
type renderCommand struct {
	runner *cliRunner
	Args   ioArgs `positional-args:"yes"`

	RenderFlags renderFlags `group:"Render"`
}

// Execute runs render subcommand.
func (command *renderCommand) Execute(_ []string) error {
	return command.runner.runRender(command.RenderFlags, command.Args.Input, command.Args.Output)
}

// sectionsCommand lists section anchors.
type sectionsCommand struct {
	runner *cliRunner
	Args   struct {
		Input string `positional-arg-name:"input" description:"Input schema file path (optional; stdin when omitted)"`
	} `positional-args:"yes"`
}

// Execute runs sections subcommand.
func (command *sectionsCommand) Execute(_ []string) error {
	return command.runner.runSections(command.Args.Input)
}

// exampleCommand writes example payload.
type exampleCommand struct {
	runner *cliRunner
	Args   ioArgs `positional-args:"yes"`

	Format string `short:"f" long:"format" description:"Example payload format" choice:"json" choice:"yaml" default:"json"`
}

// Execute runs example subcommand.
func (command *exampleCommand) Execute(_ []string) error {
	return command.runner.runExample(command.Format, command.Args.Input, command.Args.Output)
}

// templateCommand exports built-in template.
type templateCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output template file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	Format string `short:"f" long:"format" description:"Template format" choice:"markdown" choice:"html" default:"markdown"`
}

// Execute runs template subcommand.
func (command *templateCommand) Execute(_ []string) error {
	return command.runner.runTemplate(command.Format, command.Args.Output)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	printVersionInfo(command.runner.stdout)
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	programName string
	log         logr.Logger
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "schemaview"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		log:         logr.Discard(),
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// newLogger builds console zap logger on stderr wrapped as logr.
//
// Each -v lowers the zap level by one, so V(n) logs appear with n flags.
func newLogger(stderr io.Writer, verbosity int) logr.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(stderr)),
		zap.NewAtomicLevelAt(zapcore.Level(-verbosity)),
	)

	return zapr.NewLogger(zap.New(core))
}

// runRender compiles schema and writes presented layout to stdout or file.
func (runner *cliRunner) runRender(renderOptions renderFlags, inputPath, outputPath string) error {
	doc, sourcePath, err := runner.readDocument(inputPath)
	if err != nil {
		return err
	}

	opt := schemaview.Options{
		Title:        renderOptions.Title,
		SourcePath:   sourcePath,
		Format:       schemaview.Format(renderOptions.Format),
		ActiveAnchor: renderOptions.Active,
		WrapWidth:    renderOptions.WrapWidth,
		Color:        renderOptions.Color,
		Logger:       runner.log,
	}

	if renderOptions.TemplatePath != "" {
		customTemplate, err := os.ReadFile(renderOptions.TemplatePath)
		if err != nil {
			return fmt.Errorf("read template file %q: %w", renderOptions.TemplatePath, err)
		}

		opt.TemplateText = string(customTemplate)
	}

	rendered, err := doc.Render(opt)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return runner.writeOutput(outputPath, []byte(rendered), "rendered document")
}

// runSections prints one "id<TAB>title" line per documented section.
func (runner *cliRunner) runSections(inputPath string) error {
	doc, _, err := runner.readDocument(inputPath)
	if err != nil {
		return err
	}

	layout, err := doc.Compile(schemaview.Options{Logger: runner.log})
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	var out strings.Builder
	for _, anchor := range layout.Anchors() {
		out.WriteString(anchor.ID)
		if anchor.Title != "" {
			out.WriteString("\t" + anchor.Title)
		}

		out.WriteString("\n")
	}

	return runner.writeOutput("", []byte(out.String()), "sections")
}

// runExample writes example payload in selected format to stdout or file.
func (runner *cliRunner) runExample(format, inputPath, outputPath string) error {
	doc, _, err := runner.readDocument(inputPath)
	if err != nil {
		return err
	}

	var data []byte
	switch schemaview.ExampleFormat(format) {
	case schemaview.ExampleFormatYAML:
		data, err = doc.ExampleYAML()
	default:
		data, err = doc.ExampleJSON()
	}

	if err != nil {
		return fmt.Errorf("generate example: %w", err)
	}

	return runner.writeOutput(outputPath, data, "example")
}

// runTemplate writes selected built-in template to stdout or file.
func (runner *cliRunner) runTemplate(format, outputPath string) error {
	tpl, err := schemaview.BuiltinTemplate(schemaview.Format(format))
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", format, err)
	}

	return runner.writeOutput(outputPath, []byte(tpl), "template")
}

// readDocument reads and parses schema from file path or stdin.
func (runner *cliRunner) readDocument(path string) (*schemaview.Document, string, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		runner.log.V(1).Info("reading schema", "path", path)
		doc, err := schemaview.ParseFile(path)
		if err != nil {
			return nil, "", err
		}

		return doc, path, nil
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read schema from stdin: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, "", errors.New("read schema from stdin: empty input")
	}

	doc, err := schemaview.ParseDocument(data)
	if err != nil {
		return nil, "", err
	}

	return doc, "", nil
}

// writeOutput writes data to stdout or file.
func (runner *cliRunner) writeOutput(outputPath string, data []byte, what string) error {
	if strings.TrimSpace(outputPath) == "" {
		if _, err := runner.stdout.Write(data); err != nil {
			return fmt.Errorf("write %s to stdout: %w", what, err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("write %s file %q: %w", what, outputPath, err)
	}

	runner.log.V(1).Info("wrote output", "path", outputPath, "bytes", len(data))
	return nil
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Render.runner = runner
	options.Sections.runner = runner
	options.Example.runner = runner
	options.Template.runner = runner
	options.Version.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if len(options.Verbose) > 0 {
			runner.log = newLogger(runner.stderr, len(options.Verbose))
		}

		if command == nil {
			return nil
		}

		return command.Execute(args)
	}
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	return err
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"render": strings.TrimSpace(fmt.Sprintf(`
Compile schema into an example document with one section per documented property.
Reads schema from file argument or stdin; writes output to file argument or stdout.
Output formats: %s.

Examples:
> $ %s render schema.yaml
> $ %s render -f markdown -a server.port schema.yaml docs/config.md
> $ cat schema.json | %s render --color
`, strings.Join(schemaview.FormatNames(), ", "), programName, programName, programName)),
		"sections": strings.TrimSpace(fmt.Sprintf(`
Print section anchors, one per line, followed by section title.

Examples:
> $ %s sections schema.yaml
`, programName)),
		"example": strings.TrimSpace(fmt.Sprintf(`
Generate the example payload described by the schema, with references expanded.
YAML output carries property titles and descriptions as comments.

Examples:
> $ %s example schema.yaml > example.json
> $ %s example -f yaml schema.yaml example.yaml
`, programName, programName)),
		"template": strings.TrimSpace(fmt.Sprintf(`
Print built-in template text. Use it as a starting point for --template-file.

Examples:
> $ %s template > layout.md.gotmpl
> $ %s template -f html layout.html.gotmpl
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

func printVersionInfo(out io.Writer) {
	_, _ = fmt.Fprintf(out, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
