package terminal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/wallacegibbon/skillcheck/internal/skills"
	"gopkg.in/yaml.v3"
)

// Reporter prints a run result in one of the supported formats
type Reporter struct {
	out    io.Writer
	format string
	quiet  bool
	styles palette
}

// NewReporter creates a Reporter writing to out. format is "text", "json" or
// "yaml"; color and quiet only affect the text format.
func NewReporter(out io.Writer, format string, color ColorMode, quiet bool) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
		quiet:  quiet,
		styles: newPalette(out, color),
	}
}

// Report writes res to the reporter output
func (r *Reporter) Report(res *skills.RunResult) error {
	switch r.format {
	case "json":
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(newSummary(res)), "failed to encode json report")
	case "yaml":
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(newSummary(res)); err != nil {
			return errors.Wrap(err, "failed to encode yaml report")
		}
		return errors.Wrap(enc.Close(), "failed to encode yaml report")
	default:
		r.text(res)
		return nil
	}
}

func (r *Reporter) text(res *skills.RunResult) {
	s := r.styles

	if !r.quiet {
		fmt.Fprintln(r.out, s.header.Render("🔍 Validating SKILL.md files..."))
		fmt.Fprintln(r.out)
	}

	if len(res.Results) == 0 {
		fmt.Fprintln(r.out, s.fail.Render("❌ No skill directories found!"))
		return
	}

	if !r.quiet {
		fmt.Fprintf(r.out, "Found %d skill(s) to validate\n\n", len(res.Results))
	}

	for _, result := range res.Results {
		if result.Passed() {
			if !r.quiet {
				fmt.Fprintln(r.out, s.pass.Render("✓ "+result.Name))
			}
			continue
		}
		fmt.Fprintln(r.out, s.fail.Render("❌ "+result.Name))
		for _, e := range result.Errors {
			fmt.Fprintln(r.out, s.detail.Render("   - "+e))
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, s.dim.Render(strings.Repeat("=", 50)))
	if n := res.ErrorCount(); n > 0 {
		fmt.Fprintln(r.out, s.fail.Render(fmt.Sprintf("❌ Validation failed with %d error(s)", n)))
		return
	}
	fmt.Fprintln(r.out, s.pass.Render("✅ All skills validated successfully!"))
}

type summary struct {
	Found   int             `json:"found" yaml:"found"`
	Errors  int             `json:"errors" yaml:"errors"`
	Passed  bool            `json:"passed" yaml:"passed"`
	Results []resultSummary `json:"results" yaml:"results"`
}

type resultSummary struct {
	Name   string   `json:"name" yaml:"name"`
	Path   string   `json:"path" yaml:"path"`
	Passed bool     `json:"passed" yaml:"passed"`
	Errors []string `json:"errors" yaml:"errors"`
}

func newSummary(res *skills.RunResult) summary {
	s := summary{
		Found:   len(res.Results),
		Errors:  res.ErrorCount(),
		Passed:  !res.Failed(),
		Results: make([]resultSummary, 0, len(res.Results)),
	}
	for _, r := range res.Results {
		errs := r.Errors
		if errs == nil {
			errs = []string{}
		}
		s.Results = append(s.Results, resultSummary{
			Name:   r.Name,
			Path:   r.Path,
			Passed: r.Passed(),
			Errors: errs,
		})
	}
	return s
}
