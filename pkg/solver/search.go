package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/troethe/connections/pkg/game"
)

// ErrSearchExhausted reports that the search exceeded its recursion-depth
// bound. A winning line never needs more than errorBudget + group count
// moves, so hitting the bound means the search state is corrupt, not that the
// puzzle is hard.
var ErrSearchExhausted = errors.New("search exhausted")

// errWinFound cancels sibling root branches once one winning selection has
// been confirmed.
var errWinFound = errors.New("winning selection found")

// Stats describes one finished search.
type Stats struct {
	Nodes    int64
	Duration time.Duration
}

// Options configures a Solver.
type Options struct {
	// Workers is the number of root-level selections evaluated concurrently.
	// Zero or one searches sequentially.
	Workers int
	// Memo caches verdicts keyed by the canonical move set and remaining
	// budget, so transposed move orders are decided once.
	Memo bool
}

// Solver decides whether a belief state admits a guaranteed winning strategy.
// A Solver is safe for concurrent use; its memo table, when enabled, is
// shared across calls.
type Solver struct {
	workers int
	memo    *memoTable
}

// New builds a Solver.
func New(opts Options) *Solver {
	s := &Solver{workers: opts.Workers}
	if opts.Memo {
		s.memo = newMemoTable()
	}
	return s
}

// HasWinningStrategy reports whether the player can force identification of
// every hidden group from the given state, spending at most errorBudget
// non-Exact results along the way. The verdict does not depend on the order
// in which candidates are explored.
func (s *Solver) HasWinningStrategy(ctx context.Context, st State, errorBudget int) (bool, Stats, error) {
	start := time.Now()
	r, err := s.newRun(st, errorBudget)
	if err != nil {
		return false, Stats{Duration: time.Since(start)}, err
	}
	var win bool
	if s.workers > 1 {
		win, err = r.searchRootParallel(ctx, st, errorBudget)
	} else {
		win, err = r.search(ctx, st, errorBudget, 0)
	}
	stats := Stats{Nodes: r.nodes.Load(), Duration: time.Since(start)}
	if err != nil {
		return false, stats, err
	}
	return win, stats, nil
}

// run carries the per-call search context: the node counter and the depth
// bound.
type run struct {
	solver   *Solver
	maxDepth int
	nodes    atomic.Int64
}

func (s *Solver) newRun(st State, errorBudget int) (*run, error) {
	if errorBudget < 0 {
		return nil, fmt.Errorf("%w: error budget %d must be non-negative", game.ErrInvalidConfiguration, errorBudget)
	}
	return &run{solver: s, maxDepth: errorBudget + st.Params().Groups()}, nil
}

// search is the adversarial recursion: some selection must win against every
// feedback the remaining consistent keys allow.
func (r *run) search(ctx context.Context, st State, budget, depth int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.nodes.Add(1)
	if st.Won() {
		return true, nil
	}
	if depth > r.maxDepth {
		return false, fmt.Errorf("%w: depth %d exceeds limit %d", ErrSearchExhausted, depth, r.maxDepth)
	}
	if r.solver.memo != nil {
		if win, ok := r.solver.memo.get(st, budget); ok {
			return win, nil
		}
	}
	win := false
	for sel := range st.PossibleSelections() {
		ok, err := r.searchMove(ctx, st, sel, budget, depth)
		if err != nil {
			return false, err
		}
		if ok {
			win = true
			break
		}
	}
	if r.solver.memo != nil {
		r.solver.memo.put(st, budget, win)
	}
	return win, nil
}

// searchMove checks one candidate selection; it wins only if every feedback
// still possible for it leads to a winning substate. Exact feedback is free,
// anything else spends one unit of budget, and a spend below zero loses the
// branch outright.
func (r *run) searchMove(ctx context.Context, st State, sel game.SlotSet, budget, depth int) (bool, error) {
	for _, res := range st.PossibleResults(sel) {
		next := budget
		if res != game.Exact {
			next--
			if next < 0 {
				return false, nil
			}
		}
		win, err := r.search(ctx, st.WithMove(game.Move{Selection: sel, Result: res}), next, depth+1)
		if err != nil || !win {
			return false, err
		}
	}
	return true, nil
}

// searchRootParallel fans the root selections out to a bounded worker group.
// Branch subtrees stay sequential; the root split is where the tree is widest
// and the branches are independent immutable values.
func (r *run) searchRootParallel(ctx context.Context, st State, budget int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.nodes.Add(1)
	if st.Won() {
		return true, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.solver.workers)
	for sel := range st.PossibleSelections() {
		g.Go(func() error {
			win, err := r.searchMove(gctx, st, sel, budget, 0)
			if err != nil {
				return err
			}
			if win {
				return errWinFound
			}
			return nil
		})
	}
	err := g.Wait()
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, errWinFound):
		return true, nil
	default:
		return false, err
	}
}

// Plan is a winning strategy witness: play Selection, then follow the branch
// matching the feedback received.
type Plan struct {
	Selection game.SlotSet
	Branches  []Branch
}

// Branch pairs one feedback outcome with its continuation. A nil Next means
// that feedback completes the game.
type Branch struct {
	Result game.Feedback
	Next   *Plan
}

// FindPlan returns a witnessing strategy when one exists and nil when none
// does. A state that is already won also yields nil: there is nothing left to
// play.
func (s *Solver) FindPlan(ctx context.Context, st State, errorBudget int) (*Plan, Stats, error) {
	start := time.Now()
	r, err := s.newRun(st, errorBudget)
	if err != nil {
		return nil, Stats{Duration: time.Since(start)}, err
	}
	plan, _, err := r.plan(ctx, st, errorBudget, 0)
	stats := Stats{Nodes: r.nodes.Load(), Duration: time.Since(start)}
	if err != nil {
		return nil, stats, err
	}
	return plan, stats, nil
}

// plan mirrors search but materializes the first winning subtree. Memoized
// false verdicts still prune; true verdicts must be expanded again to rebuild
// their branches.
func (r *run) plan(ctx context.Context, st State, budget, depth int) (*Plan, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.nodes.Add(1)
	if st.Won() {
		return nil, true, nil
	}
	if depth > r.maxDepth {
		return nil, false, fmt.Errorf("%w: depth %d exceeds limit %d", ErrSearchExhausted, depth, r.maxDepth)
	}
	if r.solver.memo != nil {
		if win, ok := r.solver.memo.get(st, budget); ok && !win {
			return nil, false, nil
		}
	}
	for sel := range st.PossibleSelections() {
		branches, ok, err := r.planMove(ctx, st, sel, budget, depth)
		if err != nil {
			return nil, false, err
		}
		if ok {
			if r.solver.memo != nil {
				r.solver.memo.put(st, budget, true)
			}
			return &Plan{Selection: sel, Branches: branches}, true, nil
		}
	}
	if r.solver.memo != nil {
		r.solver.memo.put(st, budget, false)
	}
	return nil, false, nil
}

func (r *run) planMove(ctx context.Context, st State, sel game.SlotSet, budget, depth int) ([]Branch, bool, error) {
	results := st.PossibleResults(sel)
	branches := make([]Branch, 0, len(results))
	for _, res := range results {
		next := budget
		if res != game.Exact {
			next--
			if next < 0 {
				return nil, false, nil
			}
		}
		sub, ok, err := r.plan(ctx, st.WithMove(game.Move{Selection: sel, Result: res}), next, depth+1)
		if err != nil || !ok {
			return nil, false, err
		}
		branches = append(branches, Branch{Result: res, Next: sub})
	}
	return branches, true, nil
}

// Render formats the plan as an indented transcript: one selection per line
// with its feedback branches beneath it.
func (p *Plan) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "select %s\n", p.Selection)
	p.render(&b, 1)
	return b.String()
}

func (p *Plan) render(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, br := range p.Branches {
		if br.Next == nil {
			fmt.Fprintf(b, "%son %s: solved\n", indent, br.Result)
			continue
		}
		fmt.Fprintf(b, "%son %s: select %s\n", indent, br.Result, br.Next.Selection)
		br.Next.render(b, depth+1)
	}
}
