package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/slatefx/slate/internal/pipeline"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitResolveError = 1 // Resolution failure (no configuration, ambiguity, etc.)
	ExitCommandError = 2 // Command error (invalid arguments, write failures, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitResolveError or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error.
// Returns ExitResolveError (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitResolveError
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`    // resolution error code, e.g. "NOT_IN_PROJECT"
	Message string `json:"message"` // human-readable message
}

// Success outputs a successful result in the configured format. For
// text output, data should already be a formatted string.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// newFormatter builds the formatter every command uses, with verbose
// output routed to stderr.
func newFormatter(opts *RootOptions, out, errOut io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   opts.Verbose,
	}
}

// failResolution renders a resolution failure and converts it into an
// ExitError so main exits with the right code.
func failResolution(f *OutputFormatter, err error) error {
	code := string(pipeline.CodeOf(err))
	if code == "" {
		code = "INTERNAL"
	}
	if ferr := f.Error(code, err.Error()); ferr != nil {
		return ferr
	}
	return &ExitError{Code: ExitResolveError, Message: err.Error(), Err: err}
}

// ConfigurationReport is the data payload describing a resolved
// configuration.
type ConfigurationReport struct {
	Root               string            `json:"root"`
	ProjectName        string            `json:"project_name"`
	RegisteredLocation string            `json:"registered_location,omitempty"`
	DataRoots          map[string]string `json:"data_roots"`
	CacheLocation      string            `json:"cache_location"`
	ConfigLocation     string            `json:"config_location"`
	HooksLocation      string            `json:"hooks_location"`
	CoreHooksLocation  string            `json:"core_hooks_location"`
	SchemaLocation     string            `json:"schema_location"`
	InstallRoot        string            `json:"install_root,omitempty"`
	Environments       []string          `json:"environments"`
}

// buildReport derives the report from a resolved handle. The install
// root is best effort: an unresolvable install location should not
// keep the rest of the report from rendering.
func buildReport(h *pipeline.Handle) ConfigurationReport {
	r := ConfigurationReport{
		Root:               h.Path(),
		ProjectName:        h.ProjectName(),
		RegisteredLocation: h.RegisteredLocation(),
		DataRoots:          h.DataRoots(),
		CacheLocation:      h.CacheLocation(),
		ConfigLocation:     h.ConfigLocation(),
		HooksLocation:      h.HooksLocation(),
		CoreHooksLocation:  h.CoreHooksLocation(),
		SchemaLocation:     h.SchemaLocation(),
		Environments:       h.Environments(),
	}
	if install, err := h.InstallRoot(); err == nil {
		r.InstallRoot = install
	}
	return r
}

// formatReport renders the report as human-readable text.
func formatReport(r ConfigurationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Configuration: %s\n", r.Root)
	fmt.Fprintf(&b, "Project:       %s\n", r.ProjectName)
	if r.RegisteredLocation != "" {
		fmt.Fprintf(&b, "Registered at: %s\n", r.RegisteredLocation)
	}

	b.WriteString("Data roots:\n")
	names := make([]string, 0, len(r.DataRoots))
	for name := range r.DataRoots {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := r.DataRoots[name]
		if path == "" {
			path = "(not configured for this OS)"
		}
		fmt.Fprintf(&b, "  %s: %s\n", name, path)
	}

	fmt.Fprintf(&b, "Cache:         %s\n", r.CacheLocation)
	fmt.Fprintf(&b, "Config:        %s\n", r.ConfigLocation)
	fmt.Fprintf(&b, "Hooks:         %s\n", r.HooksLocation)
	fmt.Fprintf(&b, "Core hooks:    %s\n", r.CoreHooksLocation)
	fmt.Fprintf(&b, "Schema:        %s\n", r.SchemaLocation)
	if r.InstallRoot != "" {
		fmt.Fprintf(&b, "Install root:  %s\n", r.InstallRoot)
	}

	if len(r.Environments) > 0 {
		b.WriteString("Environments:\n")
		for _, name := range r.Environments {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
