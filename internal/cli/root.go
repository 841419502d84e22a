// Package cli implements the schemaform command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-schemaform/internal/config"
	"github.com/goliatone/go-schemaform/internal/loader"
	"github.com/goliatone/go-schemaform/internal/logging"
	"github.com/goliatone/go-schemaform/pkg/codec"
	"github.com/goliatone/go-schemaform/pkg/prompt"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// ErrValidation is returned when a command reported validation problems.
var ErrValidation = errors.New("schemaform: validation failed")

// Options wires the command tree to its environment. Zero values fall back to
// the process streams and a survey prompt driver.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Driver prompt.Driver
	Viper  *viper.Viper
}

type app struct {
	opts       Options
	v          *viper.Viper
	configFile string
	cfg        config.Config
	logger     zerolog.Logger
	closer     io.Closer
}

// NewRootCommand builds the schemaform command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	a := &app{opts: opts, v: opts.Viper, logger: zerolog.Nop()}
	if a.v == nil {
		a.v = viper.New()
	}

	root := &cobra.Command{
		Use:   "schemaform",
		Short: "Convert schema form data to and from JSON Schema definitions",
		Long: `schemaform turns the flat field list produced by a schema editor into a
JSON Schema (draft 4) definition understood by json-editor style form
renderers, and back again.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./schemaform.yaml or $HOME/.config/schemaform/schemaform.yaml)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error, disabled)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("log-file", "", "also write logs to this file, rotated by size")
	flags.Bool("allow-http", false, "allow loading inputs from http(s) URLs")
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = a.v.BindPFlag(config.KeyLogFile, flags.Lookup("log-file"))
	_ = a.v.BindPFlag(config.KeyAllowHTTP, flags.Lookup("allow-http"))

	root.AddCommand(
		a.newEncodeCommand(),
		a.newDecodeCommand(),
		a.newValidateCommand(),
		a.newAuthorCommand(),
		a.newOpenAPICommand(),
		a.newLocalIDCommand(),
	)
	return root
}

// Execute runs the command tree against the process environment.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCommand(Options{})
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *app) init() error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, closer, err := logging.New(cfg.Log, a.opts.Err)
	if err != nil {
		return err
	}
	a.logger = logger
	a.closer = closer
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("file", used).Msg("using config file")
	}
	return nil
}

func (a *app) codec() *codec.Codec {
	return codec.New(codec.WithLogger(a.logger))
}

func (a *app) loader() *loader.Loader {
	var options []schema.LoaderOption
	if a.cfg.Input.AllowHTTP {
		options = append(options, schema.WithHTTPFallback(a.cfg.Input.Timeout))
	}
	return loader.New(schema.NewLoaderOptions(options...),
		loader.WithStdin(a.opts.In),
		loader.WithLogger(a.logger),
	)
}

func (a *app) load(ctx context.Context, arg string) (schema.Document, error) {
	src := schema.ParseSource(arg)
	if src == nil {
		return schema.Document{}, fmt.Errorf("invalid input %q", arg)
	}
	return a.loader().Load(ctx, src)
}

func (a *app) driver() prompt.Driver {
	if a.opts.Driver != nil {
		return a.opts.Driver
	}
	return prompt.NewSurveyDriver()
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
