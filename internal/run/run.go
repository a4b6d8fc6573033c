package run

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/wallacegibbon/skillcheck/internal/config"
	"github.com/wallacegibbon/skillcheck/internal/logger"
	"github.com/wallacegibbon/skillcheck/internal/skills"
	"golang.org/x/sync/errgroup"
)

// Runner validates every skill directory of one run
type Runner struct {
	Root    string
	Dirs    []string // explicit directories; discovery is skipped when set
	Nested  []string
	Exclude []string
	Jobs    int
}

// New creates a Runner from resolved settings
func New(s *config.Settings) *Runner {
	return &Runner{
		Root:    s.Root,
		Dirs:    s.Dirs,
		Nested:  s.Nested,
		Exclude: s.Exclude,
		Jobs:    s.Jobs,
	}
}

// Run validates all target directories and returns their results sorted by
// name. Validation problems are reported in the result; the error is only set
// when discovery fails or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (*skills.RunResult, error) {
	dirs, err := r.targets(ctx)
	if err != nil {
		return nil, err
	}

	jobs := r.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]skills.Result, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, dir := range dirs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = skills.ValidateDir(dir)
			logger.G(gctx).
				WithField("skill", dir.Name).
				WithField("errors", len(results[i].Errors)).
				Debug("validated skill directory")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "validation interrupted")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "validation interrupted")
	}

	return &skills.RunResult{Results: results}, nil
}

func (r *Runner) targets(ctx context.Context) ([]skills.Dir, error) {
	if len(r.Dirs) == 0 {
		return skills.Discover(ctx, r.Root,
			skills.WithNestedDirs(r.Nested...),
			skills.WithExclude(r.Exclude...),
		)
	}

	dirs := make([]skills.Dir, 0, len(r.Dirs))
	for _, path := range r.Dirs {
		dirs = append(dirs, skills.NewDir(path))
	}
	sort.SliceStable(dirs, func(i, j int) bool {
		return dirs[i].Name < dirs[j].Name
	})
	return dirs, nil
}
