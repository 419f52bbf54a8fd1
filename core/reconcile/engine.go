package reconcile

import (
	"context"
	"fmt"

	"shortcut-sync/core/artwork"
	"shortcut-sync/core/identity"
	"shortcut-sync/core/library"
	"shortcut-sync/core/provider"
	"shortcut-sync/core/shortcuts"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Scanner finds installed games and their executables.
type Scanner interface {
	Scan(roots []string) map[string]library.Game
	SelectExecutable(installDir string) (library.Executable, bool)
}

// AssetCache fills and prunes per-identity artwork.
type AssetCache interface {
	Populate(ctx context.Context, appID uint32, gameID int) artwork.Report
	Evict(appID uint32) ([]string, error)
}

// Engine runs reconciliation passes.
type Engine struct {
	opts     Options
	scanner  Scanner
	cache    AssetCache
	provider provider.ImageProvider
	logger   *zap.Logger
}

// New creates an engine. cache and p may be nil, in which case artwork is not managed
// and games are added under their directory name.
func New(opts Options, scanner Scanner, cache AssetCache, p provider.ImageProvider, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		opts:     opts,
		scanner:  scanner,
		cache:    cache,
		provider: p,
		logger:   logger,
	}
}

// Run performs one reconciliation pass.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	reg, err := shortcuts.Load(e.opts.RegistryPath)
	if err != nil {
		return nil, err
	}
	games := e.scanner.Scan(e.opts.Roots)

	plan := BuildPlan(reg, games)
	e.logger.Info("Reconcile plan built",
		zap.Int("registered", plan.Summary.Registered),
		zap.Int("scanned", plan.Summary.Scanned),
		zap.Int("kept", plan.Summary.Kept),
		zap.Int("remove", plan.Summary.RemoveActions),
		zap.Int("add", plan.Summary.AddActions),
		zap.Bool("dry_run", e.opts.DryRun))

	result := &Result{
		Plan: plan,
		Summary: Summary{
			Registered: plan.Summary.Registered,
			Scanned:    plan.Summary.Scanned,
			Kept:       plan.Summary.Kept,
		},
	}
	if e.opts.DryRun {
		result.Registry = reg
		return result, nil
	}

	out := &shortcuts.Registry{Entries: append([]shortcuts.Entry(nil), plan.Keep...)}

	for _, entry := range plan.Stale {
		result.Summary.Evicted += e.evict(entry)
		result.Summary.Removed++
		e.logger.Info("Removed shortcut",
			zap.String("name", entry.AppName),
			zap.Uint32("app_id", entry.AppID))
	}

	ids := make(map[uint32]string, out.Len())
	for _, entry := range out.Entries {
		ids[entry.AppID] = entry.AppName
	}

	total := len(plan.Candidates)
	for i, game := range plan.Candidates {
		outcome := e.add(ctx, game, ids)
		result.Outcomes = append(result.Outcomes, outcome)

		switch outcome.Status {
		case OutcomeAdded:
			out.Append(*outcome.Entry)
			ids[outcome.Entry.AppID] = outcome.Entry.AppName
			result.Summary.Added++
		case OutcomeSkipped:
			result.Summary.Skipped++
		case OutcomeFailed:
			result.Summary.Failed++
		}

		e.logger.Info(fmt.Sprintf("processed %d/%d", i+1, total),
			zap.String("game", game.Name),
			zap.String("status", string(outcome.Status)))
	}

	if err := shortcuts.Save(e.opts.RegistryPath, out); err != nil {
		return nil, err
	}
	result.Registry = out
	result.Persisted = true
	return result, nil
}

func (e *Engine) evict(entry shortcuts.Entry) int {
	if e.cache == nil {
		return 0
	}
	removed, err := e.cache.Evict(entry.AppID)
	if err != nil {
		e.logger.Warn("Failed to evict artwork",
			zap.Uint32("app_id", entry.AppID),
			zap.Error(err))
	}
	return len(removed)
}

// add builds the entry for one candidate. ids holds the identities already registered.
func (e *Engine) add(ctx context.Context, game library.Game, ids map[uint32]string) Outcome {
	outcome := Outcome{Game: game}

	if err := ctx.Err(); err != nil {
		outcome.Status, outcome.Reason = OutcomeFailed, err.Error()
		return outcome
	}

	exe, ok := e.scanner.SelectExecutable(game.InstallDir)
	if !ok {
		e.logger.Warn("No executable found, skipping", zap.String("game", game.Name))
		outcome.Status, outcome.Reason = OutcomeSkipped, "no qualifying executable"
		return outcome
	}
	e.logger.Debug("Largest executable found",
		zap.String("path", exe.Path),
		zap.String("size", humanize.Bytes(uint64(exe.Size))))

	name := game.Name
	appID := identity.AppID(name, exe.Path)
	if other, taken := ids[appID]; taken {
		e.logger.Warn("Identity collision",
			zap.Uint32("app_id", appID),
			zap.String("game", name),
			zap.String("existing", other))
	}

	if e.provider != nil {
		name, outcome.ProviderGameID, outcome.Artwork = e.enrich(ctx, appID, name)
	}

	entry := shortcuts.NewEntry(appID, name, exe.Path, game.InstallDir)
	outcome.Status = OutcomeAdded
	outcome.Entry = &entry
	return outcome
}

// enrich searches the provider for name and populates artwork for the top match.
// It returns the display name to use, which is the provider's when matched.
func (e *Engine) enrich(ctx context.Context, appID uint32, name string) (string, int, *artwork.Report) {
	matches, err := e.provider.SearchByName(ctx, name)
	if err != nil {
		e.logger.Warn("Provider search failed", zap.String("game", name), zap.Error(err))
		return name, 0, nil
	}
	if len(matches) == 0 {
		e.logger.Info("No provider match", zap.String("game", name))
		return name, 0, nil
	}

	top := matches[0]
	e.logger.Info("Provider match",
		zap.String("game", name),
		zap.String("match", top.Name),
		zap.Int("provider_game_id", top.ID))

	if top.Name != "" {
		name = top.Name
	}
	if e.cache == nil {
		return name, top.ID, nil
	}
	report := e.cache.Populate(ctx, appID, top.ID)
	return name, top.ID, &report
}
