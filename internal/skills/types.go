package skills

// SkillFileName is the metadata file every skill directory must contain
const SkillFileName = "SKILL.md"

// Frontmatter is the flat key/value block at the top of a SKILL.md file.
// Duplicate keys keep the last value seen.
type Frontmatter map[string]string

// Dir is a candidate skill directory
type Dir struct {
	Name string // directory base name, used as the label in reports
	Path string
}

// Result holds the validation outcome of a single skill directory
type Result struct {
	Name   string
	Path   string
	Errors []string
}

// Passed reports whether the directory produced no errors
func (r Result) Passed() bool {
	return len(r.Errors) == 0
}

// RunResult is the aggregate outcome of one run across all directories
type RunResult struct {
	Results []Result
}

// ErrorCount returns the total number of errors across all directories
func (r *RunResult) ErrorCount() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Errors)
	}
	return n
}

// Failed reports whether the run should exit with a failure status.
// A run that found no directories at all is a failure.
func (r *RunResult) Failed() bool {
	return len(r.Results) == 0 || r.ErrorCount() > 0
}

// ExitCode maps the run outcome to a process exit status
func (r *RunResult) ExitCode() int {
	if r.Failed() {
		return 1
	}
	return 0
}
