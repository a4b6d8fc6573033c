package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wallacegibbon/skillcheck/internal/skills"
	"github.com/wallacegibbon/skillcheck/internal/terminal"
)

const Version = "0.1.0"

const (
	// EnvPrefix prefixes every environment variable read by skillcheck
	EnvPrefix = "SKILLCHECK"
	// FileName is the optional config file looked up in the config directory
	FileName = ".skillcheck"
)

// Settings holds all CLI configuration
type Settings struct {
	Root      string
	Dirs      []string
	Nested    []string
	Exclude   []string
	Jobs      int
	Format    string
	Color     string
	Quiet     bool
	LogLevel  string
	LogFormat string
}

// RegisterFlags adds the skillcheck flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("root", ".", "Repository root to scan for skill directories")
	fs.StringSlice("nested", []string{skills.DefaultNestedDir}, "Subdirectory of root scanned one level deeper (repeatable)")
	fs.StringSlice("exclude", nil, "Glob of skill paths relative to root to skip (repeatable)")
	fs.IntP("jobs", "j", 1, "Number of skill directories validated concurrently")
	fs.StringP("format", "f", "text", "Report format: text, json, yaml")
	fs.String("color", "auto", "Colorize text output: auto, always, never")
	fs.BoolP("quiet", "q", false, "Only print failing skills and the summary")
	fs.String("log-level", "warn", "Diagnostic log level")
	fs.String("log-format", "fmt", "Diagnostic log format: fmt, json")
}

// Load resolves settings from flags, SKILLCHECK_* environment variables and
// an optional .skillcheck.yaml in configDir, in that order of precedence.
// dirs are the positional directories given on the command line.
func Load(v *viper.Viper, fs *pflag.FlagSet, configDir string, dirs []string) (*Settings, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "failed to bind flags")
	}

	s := &Settings{
		Root:      v.GetString("root"),
		Dirs:      dirs,
		Nested:    splitList(v.GetStringSlice("nested")),
		Exclude:   splitList(v.GetStringSlice("exclude")),
		Jobs:      v.GetInt("jobs"),
		Format:    strings.ToLower(v.GetString("format")),
		Color:     strings.ToLower(v.GetString("color")),
		Quiet:     v.GetBool("quiet"),
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// splitList splits every element on commas so environment values such as
// SKILLCHECK_NESTED=a,b read the same as repeated flags. Empty items are dropped.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// Validate rejects settings the runner cannot act on
func (s *Settings) Validate() error {
	if s.Root == "" {
		return errors.New("root must not be empty")
	}
	if s.Jobs < 1 {
		return errors.Errorf("jobs must be at least 1, got %d", s.Jobs)
	}
	switch s.Format {
	case "text", "json", "yaml":
	default:
		return errors.Errorf("unknown format %q (expected text, json or yaml)", s.Format)
	}
	if _, err := terminal.ParseColorMode(s.Color); err != nil {
		return err
	}
	switch s.LogFormat {
	case "fmt", "text", "json":
	default:
		return errors.Errorf("unknown log format %q (expected fmt or json)", s.LogFormat)
	}
	return nil
}
