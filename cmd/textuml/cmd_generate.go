package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/shahar-caura/textuml/internal/batch"
	"github.com/shahar-caura/textuml/internal/render"
	"github.com/spf13/cobra"
)

// ErrGenerateFailed is returned when at least one input produced no diagram.
var ErrGenerateFailed = errors.New("diagram generation failed")

func newGenerateCmd(c *cli) *cobra.Command {
	var (
		text    string
		format  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "generate [file...]",
		Short: "Extract a class diagram from text, files or stdin",
		Example: `  textuml generate --text "Student has name. Student inherits from Person."
  textuml generate --format mermaid school.txt library.txt
  cat shop.txt | textuml generate --format plantuml`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"txt", "md"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			inputs, err := collectInputs(cmd.InOrStdin(), text, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = c.cfg.Batch.Workers
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			outputs := batch.Run(ctx, c.newProcessor(ctx), inputs, workers, c.logger)
			return writeOutputs(cmd.OutOrStdout(), cmd.ErrOrStderr(), outputs, f)
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "inline description to process")
	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatJSON), "output format: json, yaml, mermaid, plantuml")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "files processed concurrently (overrides batch.workers)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(render.Formats))
		for i, f := range render.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// collectInputs resolves the command's sources: --text, the named files, or
// stdin when neither is given.
func collectInputs(stdin io.Reader, text string, files []string) ([]batch.Input, error) {
	if text != "" && len(files) > 0 {
		return nil, fmt.Errorf("--text cannot be combined with file arguments")
	}
	if text != "" {
		return []batch.Input{{Name: "text", Text: text}}, nil
	}
	if len(files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []batch.Input{{Name: "stdin", Text: string(data)}}, nil
	}

	inputs := make([]batch.Input, len(files))
	for i, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		inputs[i] = batch.Input{Name: path, Text: string(data)}
	}
	return inputs, nil
}

// writeOutputs renders each output in order. With several inputs each block
// is preceded by a "==> name <==" header. Failures are reported on stderr
// and turn into ErrGenerateFailed once every output has been written.
func writeOutputs(stdout, stderr io.Writer, outputs []batch.Output, format render.Format) error {
	var failed []string
	for i, out := range outputs {
		if len(outputs) > 1 {
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			fmt.Fprintf(stdout, "==> %s <==\n", out.Name)
		}

		if out.Err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", out.Name, out.Err)
			failed = append(failed, out.Name)
			continue
		}
		if err := render.Write(stdout, out.Result, format); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", out.Name, err)
			failed = append(failed, out.Name)
			continue
		}
		if out.Failed() {
			failed = append(failed, out.Name)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", ErrGenerateFailed, strings.Join(failed, ", "))
	}
	return nil
}
