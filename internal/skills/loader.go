package skills

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/wallacegibbon/skillcheck/internal/logger"
)

// DefaultNestedDir is scanned one level deeper in addition to the root
const DefaultNestedDir = "document-skills"

type discoverConfig struct {
	nested  []string
	exclude []string
}

// DiscoverOption configures Discover
type DiscoverOption func(*discoverConfig) error

// WithNestedDirs replaces the subdirectories of root that are scanned one
// level deeper. Passing no names disables nested scanning.
func WithNestedDirs(names ...string) DiscoverOption {
	return func(c *discoverConfig) error {
		c.nested = names
		return nil
	}
}

// WithExclude skips candidate directories whose slash-separated path relative
// to root matches any of the doublestar patterns.
func WithExclude(patterns ...string) DiscoverOption {
	return func(c *discoverConfig) error {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return errors.Errorf("invalid exclude pattern %q", p)
			}
		}
		c.exclude = append(c.exclude, patterns...)
		return nil
	}
}

// NewDir builds a Dir for path, labelled by its base name
func NewDir(path string) Dir {
	name := filepath.Base(path)
	if abs, err := filepath.Abs(path); err == nil {
		name = filepath.Base(abs)
	}
	return Dir{Name: name, Path: path}
}

// Discover finds the skill directories under root: every non-hidden directory
// directly under root holding a SKILL.md, plus every directory directly under
// each nested scan directory holding one. The result is sorted by name.
func Discover(ctx context.Context, root string, opts ...DiscoverOption) ([]Dir, error) {
	cfg := &discoverConfig{nested: []string{DefaultNestedDir}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	log := logger.G(ctx).WithField("root", root)

	dirs, err := scanDir(root, true)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", root)
	}

	for _, name := range cfg.nested {
		nestedDir := filepath.Join(root, name)
		nested, err := scanDir(nestedDir, false)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.WithField("nested", name).Debug("nested skill directory not present")
				continue
			}
			return nil, errors.Wrapf(err, "failed to scan %s", nestedDir)
		}
		dirs = append(dirs, nested...)
	}

	kept := dirs[:0]
	for _, d := range dirs {
		if excluded(root, d.Path, cfg.exclude) {
			log.WithField("skill", d.Name).Debug("skill directory excluded")
			continue
		}
		kept = append(kept, d)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Name != kept[j].Name {
			return kept[i].Name < kept[j].Name
		}
		return kept[i].Path < kept[j].Path
	})

	log.WithField("count", len(kept)).Debug("discovered skill directories")
	return kept, nil
}

// scanDir lists the directories directly under dir that contain a SKILL.md.
// Symlinked directories are followed.
func scanDir(dir string, skipHidden bool) ([]Dir, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs []Dir
	for _, entry := range entries {
		if skipHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		entryPath := filepath.Join(dir, entry.Name())
		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		if _, err := os.Stat(filepath.Join(entryPath, SkillFileName)); err != nil {
			continue
		}

		dirs = append(dirs, Dir{Name: entry.Name(), Path: entryPath})
	}

	return dirs, nil
}

func excluded(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// ValidateDir reads the SKILL.md of dir and checks its frontmatter. A missing
// or unreadable file yields a single error and skips the frontmatter checks.
func ValidateDir(dir Dir) Result {
	res := Result{Name: dir.Name, Path: dir.Path}

	content, err := os.ReadFile(filepath.Join(dir.Path, SkillFileName))
	if err == nil && !utf8.Valid(content) {
		err = errors.New("invalid UTF-8 content")
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		res.Errors = []string{"Missing " + SkillFileName + " in " + dir.Name}
		return res
	case err != nil:
		res.Errors = []string{"Error reading " + dir.Name + "/" + SkillFileName + ": " + err.Error()}
		return res
	}

	fm, found := ExtractFrontmatter(normalizeNewlines(string(content)))
	res.Errors = CheckFrontmatter(dir.Name, fm, found)
	return res
}

// normalizeNewlines converts CRLF and lone CR line endings to LF
func normalizeNewlines(s string) string {
	return newlineReplacer.Replace(s)
}

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")
