package stats

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/mizuki-e/tempo/internal/gitstat"
)

// ErrAllRepositoriesFailed means no repository produced a series; an
// all-zero snapshot would be indistinguishable from "no activity", so this
// is surfaced as a hard failure instead.
var ErrAllRepositoriesFailed = errors.New("all repositories failed")

// RepoSpec identifies one repository to collect from.
type RepoSpec struct {
	Name   string
	Path   string
	Branch string
}

// Options carries the shared collection parameters for one aggregation run.
type Options struct {
	Range         DateRange
	Period        Period
	Zone          Zone
	Extensions    []string
	IncludeMerges bool
	// BranchOverride, when set, wins over each RepoSpec's branch.
	BranchOverride string
	// Workers bounds the collection pool; 0 means min(NumCPU, repo count).
	Workers int
}

// RepoError attributes a collection failure to one repository.
type RepoError struct {
	Name string
	Err  error
}

func (e RepoError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e RepoError) Unwrap() error {
	return e.Err
}

// Snapshot is the merged result of one aggregation run, handed to the
// presentation layer. Immutable once produced.
type Snapshot struct {
	Result   AnalysisResult
	Activity ActivityStats
}

type repoOutcome struct {
	result   AnalysisResult
	activity ActivityStats
	err      error
}

// Aggregate collects every repository concurrently on a bounded worker pool
// and merges the per-repository series into one snapshot. A failing
// repository never aborts its siblings; failures come back in the RepoError
// list. Only when every repository fails does Aggregate itself fail.
func Aggregate(specs []RepoSpec, opts Options) (*Snapshot, []RepoError, error) {
	if len(specs) == 0 {
		return nil, nil, errors.New("no repositories to analyze")
	}

	outcomes := make([]repoOutcome, len(specs))
	work := make(chan int, len(specs))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(specs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				outcomes[i] = collectOne(specs[i], opts)
			}
		}()
	}
	for i := range specs {
		work <- i
	}
	close(work)
	wg.Wait()

	var (
		errs      []RepoError
		succeeded []repoOutcome
		names     []string
	)
	for i, outcome := range outcomes {
		if outcome.err != nil {
			errs = append(errs, RepoError{Name: specs[i].Name, Err: outcome.err})
			continue
		}
		succeeded = append(succeeded, outcome)
		names = append(names, specs[i].Name)
	}

	if len(succeeded) == 0 {
		return nil, errs, fmt.Errorf("%w: %v", ErrAllRepositoriesFailed, errs[0])
	}

	snapshot := mergeOutcomes(names, succeeded, opts)
	return snapshot, errs, nil
}

func collectOne(spec RepoSpec, opts Options) repoOutcome {
	branch := opts.BranchOverride
	if branch == "" {
		branch = spec.Branch
	}

	repo, err := gitstat.Open(spec.Path, spec.Name)
	if err != nil {
		return repoOutcome{err: err}
	}

	start, _ := opts.Zone.DayBounds(opts.Range.From)
	_, end := opts.Zone.DayBounds(opts.Range.To)

	commits, err := repo.CommitsInRange(start, end, branch, opts.IncludeMerges)
	if err != nil {
		return repoOutcome{err: err}
	}

	return repoOutcome{
		result:   Collect(spec.Name, commits, opts.Range, opts.Period, opts.Zone, opts.Extensions),
		activity: CollectActivity(commits, opts.Zone, opts.Extensions),
	}
}

// mergeOutcomes sums per-repository buckets by period key. The reduction is
// commutative and associative, so repository order never changes the result.
// The key range comes from the options, not from any repository's commits:
// a zero-commit repository already carries the full zero-valued shape.
func mergeOutcomes(names []string, outcomes []repoOutcome, opts Options) *Snapshot {
	merged := make(map[time.Time]PeriodStats)
	var activity ActivityStats

	for _, outcome := range outcomes {
		for _, bucket := range outcome.result.Stats {
			entry, exists := merged[bucket.Date]
			if !exists {
				entry = WithLabel(bucket.Date, bucket.Label)
			}
			entry.Merge(bucket)
			merged[bucket.Date] = entry
		}
		activity.Add(outcome.activity)
	}

	ordered := make([]PeriodStats, 0, len(merged))
	for _, p := range merged {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	label := names[0]
	if len(names) > 1 {
		label = fmt.Sprintf("%d repos", len(names))
	}

	return &Snapshot{
		Result:   NewAnalysisResult(label, opts.Period, opts.Range, ordered),
		Activity: activity,
	}
}
