package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/goodsign/monday"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/callcc/texttemplate/pkg/formatters"
	"github.com/callcc/texttemplate/pkg/macrofile"
	"github.com/callcc/texttemplate/pkg/texttemplate"
)

var (
	contextFile string
	includeRoot string
	macrosFile  string
	timeZone    string
	locale      string
	outFile     string
	asHTML      bool
	verbose     bool
)

var rootCmd = cobra.Command{
	Use:   "texttemplate",
	Short: "Render text templates against YAML or JSON contexts",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

var renderCmd = cobra.Command{
	Use:   "render [template]",
	Short: "Render a template file to stdout or a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading template: %w", err)
		}

		ctx := map[string]any{}
		if contextFile != "" {
			data, err := os.ReadFile(contextFile)
			if err != nil {
				return fmt.Errorf("reading context: %w", err)
			}
			// yaml.v3 decodes JSON as well, so one flag covers both.
			if err := yaml.Unmarshal(data, &ctx); err != nil {
				return fmt.Errorf("decoding context: %w", err)
			}
		}

		opts, err := buildOptions()
		if err != nil {
			return err
		}

		tmpl, err := texttemplate.Parse(string(src))
		if err != nil {
			return err
		}
		slog.Debug("parsed template", "file", args[0], "nodes", len(tmpl.Children))

		out, err := texttemplate.RenderMap(tmpl, ctx, opts)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", args[0], err)
		}

		if asHTML {
			var buf bytes.Buffer
			if err := goldmark.Convert([]byte(out), &buf); err != nil {
				return fmt.Errorf("converting markdown: %w", err)
			}
			out = buf.String()
		}

		if outFile != "" {
			return os.WriteFile(outFile, []byte(out), 0o644)
		}
		_, err = fmt.Print(out)
		return err
	},
}

var inspectCmd = cobra.Command{
	Use:   "inspect [template]",
	Short: "Parse a template and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading template: %w", err)
		}
		tmpl, err := texttemplate.Parse(string(src))
		if err != nil {
			return err
		}
		fmt.Print(texttemplate.Pretty(tmpl))
		return nil
	},
}

func buildOptions() (*texttemplate.Options, error) {
	opts := texttemplate.DefaultOptions()
	if timeZone != "" || locale != "" {
		loc := texttemplate.DefaultLocation()
		if timeZone != "" {
			var err error
			loc, err = time.LoadLocation(timeZone)
			if err != nil {
				return nil, fmt.Errorf("loading time zone %q: %w", timeZone, err)
			}
		}
		df := formatters.NewDateFormatter(loc)
		if locale != "" {
			df.WithLocale(monday.Locale(locale))
		}
		opts.Formatters.SetDateFormatter(df)
	}
	if includeRoot != "" {
		opts.WithIncludes(texttemplate.DirLoader(includeRoot))
	}
	if macrosFile != "" {
		macros, err := macrofile.Load(macrosFile)
		if err != nil {
			return nil, err
		}
		slog.Debug("loaded macro library", "file", macrosFile, "macros", len(macros))
		opts.WithMacros(macros)
	}
	return opts, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	renderCmd.Flags().StringVarP(&contextFile, "context", "c", "", "YAML or JSON file with the root context")
	renderCmd.Flags().StringVar(&includeRoot, "include-root", "", "directory $include paths resolve against")
	renderCmd.Flags().StringVar(&macrosFile, "macros", "", "YAML macro library for $call")
	renderCmd.Flags().StringVar(&timeZone, "timezone", "", "IANA time zone for date formatting")
	renderCmd.Flags().StringVar(&locale, "locale", "", "locale for month and weekday names, e.g. en_US")
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	renderCmd.Flags().BoolVar(&asHTML, "html", false, "treat the rendered output as Markdown and emit HTML")

	rootCmd.AddCommand(&renderCmd)
	rootCmd.AddCommand(&inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
