package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/shahar-caura/textuml/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInitCmd() *cobra.Command {
	var (
		useDefaults bool
		force       bool
		path        string
	)

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented textuml.yaml",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !useDefaults && cmd.InOrStdin() == os.Stdin && !isTerminal(os.Stdin) {
				return fmt.Errorf("textuml init requires an interactive terminal (or --defaults)")
			}
			return cmdInit(cmd.InOrStdin(), cmd.OutOrStdout(), path, useDefaults, force)
		},
	}

	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "write the default configuration without prompting")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().StringVarP(&path, "output", "o", defaultConfigPath, "file to write")

	return cmd
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

type initData struct {
	Port       int
	CORSOrigin string
	Backend    string
	Endpoint   string
	Command    string
	LogLevel   string
	LogFormat  string
	LogFile    string
	Workers    int
}

func defaultInitData() initData {
	cfg := config.Default()
	return initData{
		Port:       cfg.Server.Port,
		CORSOrigin: cfg.Server.CORSOrigin,
		Backend:    cfg.NLP.Backend,
		LogLevel:   cfg.Log.Level,
		LogFormat:  cfg.Log.Format,
		Workers:    cfg.Batch.Workers,
	}
}

// cmdInit gathers answers (or defaults), renders the template, and refuses
// to write anything that would not load back cleanly.
func cmdInit(in io.Reader, out io.Writer, path string, useDefaults, force bool) error {
	scanner := bufio.NewScanner(in)

	if _, err := os.Stat(path); err == nil && !force {
		if useDefaults || !promptYesNo(scanner, out, path+" already exists. Overwrite?", false) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data := defaultInitData()
	if !useDefaults {
		var err error
		if data, err = promptInitData(scanner, out, data); err != nil {
			return err
		}
	}

	tmpl, err := template.New("textuml.yaml").Parse(textumlYAMLTemplate)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering template: %w", err)
	}

	if _, err := config.Parse(buf.Bytes()); err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}

func promptInitData(scanner *bufio.Scanner, out io.Writer, data initData) (initData, error) {
	fmt.Fprintln(out, "Initializing textuml.yaml...")

	fmt.Fprintln(out, "\n=== Server ===")
	port, err := strconv.Atoi(promptString(scanner, out, "Port", strconv.Itoa(data.Port)))
	if err != nil {
		return data, fmt.Errorf("port: %w", err)
	}
	data.Port = port
	data.CORSOrigin = promptString(scanner, out, "CORS origin", data.CORSOrigin)

	fmt.Fprintln(out, "\n=== Annotator ===")
	data.Backend = promptString(scanner, out, "Backend (none/http/command)", data.Backend)
	switch data.Backend {
	case config.BackendHTTP:
		data.Endpoint = promptString(scanner, out, "Endpoint", "http://localhost:8000")
	case config.BackendCommand:
		data.Command = promptString(scanner, out, "Command", "")
		if data.Command == "" {
			return data, fmt.Errorf("nlp.command is required for the command backend")
		}
	}

	fmt.Fprintln(out, "\n=== Logging ===")
	data.LogLevel = promptString(scanner, out, "Level", data.LogLevel)
	data.LogFormat = promptString(scanner, out, "Format (text/json)", data.LogFormat)
	data.LogFile = promptString(scanner, out, "File (empty for stderr)", "")

	return data, nil
}

func promptString(scanner *bufio.Scanner, out io.Writer, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, defaultVal)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}
	scanner.Scan()
	input := strings.TrimSpace(scanner.Text())
	if input == "" {
		return defaultVal
	}
	return input
}

func promptYesNo(scanner *bufio.Scanner, out io.Writer, label string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(out, "%s %s: ", label, hint)
	scanner.Scan()
	input := strings.TrimSpace(strings.ToLower(scanner.Text()))
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}

const textumlYAMLTemplate = `# textuml configuration
# Environment variables are resolved at load time: ${VAR_NAME}

server:
  port: {{.Port}}
  cors_origin: "{{.CORSOrigin}}"
  read_timeout: 10s
  write_timeout: 30s
  shutdown_timeout: 5s
  max_body_bytes: 1048576

nlp:
  backend: {{.Backend}}
{{- if .Endpoint}}
  endpoint: {{.Endpoint}}
{{- end}}
{{- if .Command}}
  command: {{.Command}}
{{- end}}
  timeout: 5s
{{- if not (or .Endpoint .Command)}}
  # endpoint: http://localhost:8000   # backend: http
  # command: textuml-parse            # backend: command
  # args: ["--model", "en_core_web_sm"]
{{- end}}

log:
  level: {{.LogLevel}}
  format: {{.LogFormat}}
{{- if .LogFile}}
  file: {{.LogFile}}
{{- else}}
  # file: textuml.log
{{- end}}
  max_size_mb: 50
  max_backups: 3
  max_age_days: 28

batch:
  workers: {{.Workers}}
`
