package skills

import (
	"regexp"
	"strings"
)

// frontmatterPattern matches a block delimited by two "---" lines at the very
// start of the content. The closing line may end the file without a newline.
var frontmatterPattern = regexp.MustCompile(`(?s)^---\s*?\n(?:(.*?)\n)?---\s*(?:\n|$)`)

// ExtractFrontmatter parses the leading frontmatter block of a SKILL.md file.
// The second return value is false when no block is present, which is distinct
// from an empty block.
func ExtractFrontmatter(content string) (Frontmatter, bool) {
	match := frontmatterPattern.FindStringSubmatch(content)
	if match == nil {
		return Frontmatter{}, false
	}

	fm := Frontmatter{}
	for _, line := range strings.Split(match[1], "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			// Free-form lines are allowed inside the block
			continue
		}
		fm[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return fm, true
}
