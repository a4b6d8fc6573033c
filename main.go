package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wallacegibbon/skillcheck/internal/config"
	"github.com/wallacegibbon/skillcheck/internal/logger"
	"github.com/wallacegibbon/skillcheck/internal/run"
	"github.com/wallacegibbon/skillcheck/internal/terminal"
)

// exitError carries a process exit status out of a command
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skillcheck [dir...]",
		Short: "Validate SKILL.md frontmatter across all skills",
		Long: `skillcheck scans the repository for skill directories and validates the
frontmatter block at the top of each SKILL.md file.

Without arguments it validates every non-hidden directory in the root holding
a SKILL.md, plus the directories one level inside document-skills/. When
directories are given, only those are validated.

Each SKILL.md must start with a block like:

  ---
  name: pdf-processing
  description: Extract text and tables from PDF files
  ---

name must be lowercase letters, digits and hyphens; description must be
between 20 and 500 characters.

A directory literally named "version" collides with the version subcommand;
pass it with a path prefix instead, e.g. ./version.

Exit status is 0 when at least one skill was found and all of them are valid,
1 otherwise.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runValidate,
	}

	config.RegisterFlags(cmd.Flags())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "skillcheck version %s\n", config.Version)
		},
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, err := config.Load(viper.New(), cmd.Flags(), cwd, args)
	if err != nil {
		return err
	}

	logger.SetLogOutput(cmd.ErrOrStderr())
	if err := logger.SetLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	logger.SetLogFormat(cfg.LogFormat)

	color, err := terminal.ParseColorMode(cfg.Color)
	if err != nil {
		return err
	}

	ctx := logger.WithLogger(cmd.Context(), logger.G(cmd.Context()).WithField("cmd", cmd.Name()))
	logger.G(ctx).WithField("root", cfg.Root).WithField("jobs", cfg.Jobs).Debug("starting validation")

	res, err := run.New(cfg).Run(ctx)
	if err != nil {
		return err
	}

	reporter := terminal.NewReporter(cmd.OutOrStdout(), cfg.Format, color, cfg.Quiet)
	if err := reporter.Report(res); err != nil {
		return err
	}

	if code := res.ExitCode(); code != 0 {
		return exitError{code: code}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, newRootCmd())
	stop()
	os.Exit(code)
}

// execute runs cmd and maps its outcome to a process exit status
func execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return 1
}
