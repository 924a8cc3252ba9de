// Package assist runs the rules assistant pipeline: classify an inbound
// message, elect the reacting observer, check range, correlate rolls and
// produce the follow-up the host should show.
package assist

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"rulesaide/internal/classify"
	"rulesaide/internal/config"
	"rulesaide/internal/correlate"
	"rulesaide/internal/encumbrance"
	"rulesaide/internal/geometry"
	"rulesaide/internal/journal"
	"rulesaide/internal/rangecheck"
	"rulesaide/internal/reminder"
	"rulesaide/internal/store"
)

// Settings is the table-level option surface.
type Settings struct {
	EnforceTargetSelection bool
	EnforceRangeChecking   bool
	MaxTargets             int
	AttackRollTimeout      time.Duration
	DamageRollTimeout      time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		EnforceTargetSelection: true,
		EnforceRangeChecking:   true,
		MaxTargets:             1,
		AttackRollTimeout:      correlate.DefaultAttackRollTimeout,
		DamageRollTimeout:      correlate.DefaultDamageRollTimeout,
	}
}

// Journal receives one entry per decision.
type Journal interface {
	Record(kind string, payload any) (journal.Entry, error)
}

type Options struct {
	Settings    Settings
	Policy      rangecheck.Policy
	CellSize    float64
	UnitPerCell float64
	Markers     classify.Markers

	Weapons   *config.WeaponCatalog
	Reminders *reminder.Catalog
	Store     store.Store
	Journal   Journal
	Logger    *log.Logger
	Now       func() time.Time
}

// OptionsFromConfig fills the settings, grid, range policy and markers from
// a project file. Catalogues, store and journal are left to the caller.
func OptionsFromConfig(cfg *config.ProjectConfig) Options {
	return Options{
		Settings: Settings{
			EnforceTargetSelection: cfg.Settings.TargetsEnforced(),
			EnforceRangeChecking:   cfg.Settings.RangeEnforced(),
			MaxTargets:             cfg.Settings.MaxTargets,
			AttackRollTimeout:      cfg.Settings.AttackRollTimeout(),
			DamageRollTimeout:      cfg.Settings.DamageRollTimeout(),
		},
		Policy:      rangecheck.Policy{MeleeMax: cfg.Range.MeleeMax, ReachMax: cfg.Range.ReachMax},
		CellSize:    cfg.Grid.CellSize,
		UnitPerCell: cfg.Grid.UnitPerCell,
		Markers:     cfg.Markers,
	}
}

type Assistant struct {
	settings    Settings
	policy      rangecheck.Policy
	cellSize    float64
	unitPerCell float64

	classifier *classify.Classifier
	tracker    *correlate.Tracker
	weapons    *config.WeaponCatalog
	reminders  *reminder.Catalog
	store      store.Store
	journal    Journal
	logger     *log.Logger
	now        func() time.Time
}

func New(opts Options) (*Assistant, error) {
	classifier, err := classify.New(opts.Markers)
	if err != nil {
		return nil, fmt.Errorf("building classifier: %w", err)
	}

	settings := opts.Settings
	if settings.MaxTargets <= 0 {
		settings.MaxTargets = 1
	}
	policy := opts.Policy
	if policy == (rangecheck.Policy{}) {
		policy = rangecheck.DefaultPolicy()
	}
	cellSize := opts.CellSize
	if cellSize == 0 {
		cellSize = 100
	}
	unitPerCell := opts.UnitPerCell
	if unitPerCell == 0 {
		unitPerCell = 2
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	reminders := opts.Reminders
	if reminders == nil {
		reminders = reminder.Builtin()
	}

	return &Assistant{
		settings:    settings,
		policy:      policy,
		cellSize:    cellSize,
		unitPerCell: unitPerCell,
		classifier:  classifier,
		tracker:     correlate.NewTracker(settings.AttackRollTimeout, settings.DamageRollTimeout, now),
		weapons:     opts.Weapons,
		reminders:   reminders,
		store:       opts.Store,
		journal:     opts.Journal,
		logger:      logger,
		now:         now,
	}, nil
}

// AttackRequest describes an attack the host is about to resolve. Profile
// takes precedence over Weapon when both are set.
type AttackRequest struct {
	Attacker geometry.Footprint
	Target   *geometry.Footprint
	Targets  int
	Weapon   string
	Profile  *rangecheck.WeaponProfile
	HasReach bool
}

// CheckAttack decides whether the attack may proceed. Anything the assistant
// cannot judge, such as an unknown weapon, is allowed. Bad footprints are the
// caller's bug and come back as errors.
func (a *Assistant) CheckAttack(ctx context.Context, req AttackRequest) (rangecheck.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return rangecheck.Outcome{}, err
	}

	targets := req.Targets
	if targets == 0 && req.Target != nil {
		targets = 1
	}
	if a.settings.EnforceTargetSelection {
		switch {
		case targets == 0:
			return a.recordOutcome(req, rangecheck.Deny(rangecheck.ReasonNoTarget, 0, 0)), nil
		case targets > a.settings.MaxTargets:
			return a.recordOutcome(req, rangecheck.Deny(rangecheck.ReasonTooManyTarget, 0, 0)), nil
		}
	}

	if !a.settings.EnforceRangeChecking || req.Target == nil {
		return a.recordOutcome(req, rangecheck.Allow()), nil
	}

	profile, ok := a.profileFor(req)
	if !ok {
		return a.recordOutcome(req, rangecheck.Allow()), nil
	}

	distance, err := geometry.Distance(req.Attacker, *req.Target, a.cellSize, a.unitPerCell)
	if err != nil {
		return rangecheck.Outcome{}, fmt.Errorf("measuring attack distance: %w", err)
	}

	hasReach := req.HasReach || profile.HasReach()
	return a.recordOutcome(req, a.policy.Validate(distance, profile, hasReach)), nil
}

func (a *Assistant) profileFor(req AttackRequest) (rangecheck.WeaponProfile, bool) {
	if req.Profile != nil {
		return *req.Profile, true
	}
	if strings.TrimSpace(req.Weapon) == "" {
		return rangecheck.WeaponProfile{}, false
	}
	return a.weapons.Profile(req.Weapon)
}

func (a *Assistant) recordOutcome(req AttackRequest, outcome rangecheck.Outcome) rangecheck.Outcome {
	a.record("outcome", map[string]any{
		"weapon":  req.Weapon,
		"targets": req.Targets,
		"outcome": outcome,
	})
	return outcome
}

// RemindersFor renders the reminders attached to trigger.
func (a *Assistant) RemindersFor(trigger reminder.Trigger) []string {
	matches := a.reminders.For(trigger)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, r := range matches {
		out = append(out, reminder.Render(r))
	}
	return out
}

// Message is one chat message as seen by observer Self.
type Message struct {
	ID        string
	Author    string
	Self      string
	Text      string
	Observers []classify.Observer
}

// Reaction is what the elected observer should do with a message.
type Reaction struct {
	MessageID  string             `json:"message_id"`
	Event      classify.Event     `json:"event"`
	Critical   bool               `json:"critical"`
	Correlated bool               `json:"correlated"`
	Reminders  []string           `json:"reminders,omitempty"`
	Grudge     *store.GrudgeEntry `json:"grudge,omitempty"`
}

// HandleMessage returns nil when the message is not a successful action or
// when another observer is elected to react to it.
func (a *Assistant) HandleMessage(ctx context.Context, msg Message) (*Reaction, error) {
	event := a.classifier.Classify(msg.Text)
	if !event.Actionable() {
		return nil, nil
	}
	if !classify.ShouldAct(msg.Self, msg.Observers, msg.Author) {
		return nil, nil
	}

	key := correlate.Key{Actor: event.ActorRef, Target: event.TargetRef}
	reaction := &Reaction{MessageID: msg.ID, Event: event}

	switch event.Kind {
	case classify.KindAttackRoll:
		a.tracker.RecordAttack(key, correlate.Attack{Critical: event.Critical, MessageID: msg.ID})
		reaction.Critical = event.Critical
	case classify.KindDamageRoll:
		damage, matched := a.tracker.ResolveDamageRoll(key, event.Amount, msg.ID)
		reaction.Critical = damage.Critical
		reaction.Correlated = matched
	case classify.KindDamageApplication:
		damage, matched := a.tracker.ResolveApplication(key)
		reaction.Critical = matched && damage.Critical
		reaction.Correlated = matched
		grudge, err := a.recordGrudge(ctx, event, reaction.Critical, msg.ID)
		if err != nil {
			return nil, err
		}
		reaction.Grudge = grudge
	}

	reaction.Reminders = a.RemindersFor(reminder.Trigger(event.Kind))
	a.record("reaction", reaction)
	return reaction, nil
}

func (a *Assistant) recordGrudge(ctx context.Context, event classify.Event, critical bool, messageID string) (*store.GrudgeEntry, error) {
	if a.store == nil || event.TargetRef == "" || !event.HasAmount {
		return nil, nil
	}
	entry, err := a.store.RecordGrudge(ctx, store.GrudgeInput{
		Victim:        event.TargetRef,
		Attacker:      event.ActorRef,
		Amount:        event.Amount,
		Critical:      critical,
		SourceMessage: messageID,
		RecordedAt:    a.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("recording grudge: %w", err)
	}
	return entry, nil
}

// EncumbranceResult is a computed status plus any reminders it triggers.
type EncumbranceResult struct {
	Actor     string             `json:"actor"`
	Status    encumbrance.Status `json:"status"`
	Reminders []string           `json:"reminders,omitempty"`
}

// UpdateEncumbrance computes an actor's load and saves the snapshot when a
// store is configured.
func (a *Assistant) UpdateEncumbrance(ctx context.Context, actor string, items []encumbrance.Item, capacity float64) (*EncumbranceResult, error) {
	if strings.TrimSpace(actor) == "" {
		return nil, fmt.Errorf("actor is required")
	}
	status, err := encumbrance.Compute(items, capacity)
	if err != nil {
		return nil, err
	}

	if a.store != nil {
		err := a.store.SaveEncumbrance(ctx, store.EncumbranceSnapshot{
			Actor:     actor,
			Load:      status.Load,
			Capacity:  status.Capacity,
			Level:     string(status.Level),
			UpdatedAt: a.now(),
		})
		if err != nil {
			return nil, fmt.Errorf("saving encumbrance: %w", err)
		}
	}

	result := &EncumbranceResult{Actor: actor, Status: status}
	if status.Level != encumbrance.LevelUnencumbered {
		result.Reminders = a.RemindersFor(reminder.TriggerEncumbrance)
	}
	a.record("encumbrance", result)
	return result, nil
}

// Sweep evicts expired correlation entries and returns how many were removed.
func (a *Assistant) Sweep() int {
	return a.tracker.Sweep()
}

// Run sweeps on interval until ctx is done.
func (a *Assistant) Run(ctx context.Context, interval time.Duration) {
	a.tracker.Run(ctx, interval)
}

func (a *Assistant) Pending() (attacks, damage int) {
	return a.tracker.Pending()
}

func (a *Assistant) Classifier() *classify.Classifier {
	return a.classifier
}

func (a *Assistant) record(kind string, payload any) {
	if a.journal == nil {
		return
	}
	if _, err := a.journal.Record(kind, payload); err != nil {
		a.logger.Printf("journal %s: %v", kind, err)
	}
}
