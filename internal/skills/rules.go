package skills

import (
	"fmt"
	"unicode/utf8"
)

const (
	MinDescriptionLength = 20
	MaxDescriptionLength = 500
)

// requiredFields are checked in this order
var requiredFields = []string{"name", "description"}

// CheckFrontmatter applies the validation rules to an extracted frontmatter
// block and returns the violations, each prefixed with label. found reports
// whether a block was present at all; when it is false no other rule runs.
func CheckFrontmatter(label string, fm Frontmatter, found bool) []string {
	var errs []string
	add := func(format string, args ...any) {
		errs = append(errs, label+": "+fmt.Sprintf(format, args...))
	}

	if !found {
		add("Missing frontmatter")
		return errs
	}

	for _, field := range requiredFields {
		value, ok := fm[field]
		if !ok {
			add("Missing required field '%s'", field)
		} else if value == "" {
			add("Empty value for '%s'", field)
		}
	}

	if name, ok := fm["name"]; ok && !validName(name) {
		add("Invalid name format '%s' (should be lowercase with hyphens)", name)
	}

	if desc, ok := fm["description"]; ok {
		n := utf8.RuneCountInString(desc)
		if n < MinDescriptionLength {
			add("Description too short (%d chars, min %d)", n, MinDescriptionLength)
		}
		if n > MaxDescriptionLength {
			add("Description too long (%d chars, max %d)", n, MaxDescriptionLength)
		}
	}

	return errs
}

// validName reports whether name is non-empty and made only of lowercase
// ASCII letters, digits and hyphens
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-') {
			return false
		}
	}
	return true
}
