package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("skillcheck", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load(viper.New(), newFlagSet(t), t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, ".", s.Root)
	assert.Equal(t, []string{"document-skills"}, s.Nested)
	assert.Empty(t, s.Exclude)
	assert.Empty(t, s.Dirs)
	assert.Equal(t, 1, s.Jobs)
	assert.Equal(t, "text", s.Format)
	assert.Equal(t, "auto", s.Color)
	assert.False(t, s.Quiet)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "fmt", s.LogFormat)
}

func TestLoadFlags(t *testing.T) {
	fs := newFlagSet(t,
		"--root", "repo",
		"--nested", "extra",
		"--nested", "more",
		"--exclude", "drafts/**",
		"-j", "4",
		"--format", "JSON",
		"--color", "never",
		"-q",
	)

	s, err := Load(viper.New(), fs, t.TempDir(), []string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, "repo", s.Root)
	assert.Equal(t, []string{"extra", "more"}, s.Nested)
	assert.Equal(t, []string{"drafts/**"}, s.Exclude)
	assert.Equal(t, 4, s.Jobs)
	assert.Equal(t, "json", s.Format)
	assert.Equal(t, "never", s.Color)
	assert.True(t, s.Quiet)
	assert.Equal(t, []string{"a", "b"}, s.Dirs)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SKILLCHECK_FORMAT", "yaml")
	t.Setenv("SKILLCHECK_LOG_LEVEL", "debug")

	s, err := Load(viper.New(), newFlagSet(t), t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, "yaml", s.Format)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadEnvLists(t *testing.T) {
	t.Setenv("SKILLCHECK_NESTED", "team,document-skills")
	t.Setenv("SKILLCHECK_EXCLUDE", "wip-*, drafts/**")

	s, err := Load(viper.New(), newFlagSet(t), t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"team", "document-skills"}, s.Nested)
	assert.Equal(t, []string{"wip-*", "drafts/**"}, s.Exclude)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a,b", " c "}))
	assert.Equal(t, []string{}, splitList([]string{"", " , "}))
	assert.Equal(t, []string{}, splitList(nil))
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `jobs: 3
nested:
  - document-skills
  - team-skills
color: always
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".skillcheck.yaml"), []byte(content), 0o644))

	t.Run("file values apply", func(t *testing.T) {
		s, err := Load(viper.New(), newFlagSet(t), dir, nil)
		require.NoError(t, err)

		assert.Equal(t, 3, s.Jobs)
		assert.Equal(t, []string{"document-skills", "team-skills"}, s.Nested)
		assert.Equal(t, "always", s.Color)
	})

	t.Run("flags override file", func(t *testing.T) {
		s, err := Load(viper.New(), newFlagSet(t, "--jobs", "8"), dir, nil)
		require.NoError(t, err)
		assert.Equal(t, 8, s.Jobs)
	})
}

func TestLoadInvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".skillcheck.yaml"), []byte("jobs: [\n"), 0o644))

	_, err := Load(viper.New(), newFlagSet(t), dir, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	valid := func() Settings {
		return Settings{Root: ".", Jobs: 1, Format: "text", Color: "auto", LogFormat: "fmt"}
	}

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"valid", func(*Settings) {}, ""},
		{"empty root", func(s *Settings) { s.Root = "" }, "root must not be empty"},
		{"zero jobs", func(s *Settings) { s.Jobs = 0 }, "jobs must be at least 1"},
		{"unknown format", func(s *Settings) { s.Format = "xml" }, `unknown format "xml"`},
		{"unknown color", func(s *Settings) { s.Color = "rainbow" }, `unknown color mode "rainbow"`},
		{"unknown log format", func(s *Settings) { s.LogFormat = "logfmt" }, `unknown log format "logfmt"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
