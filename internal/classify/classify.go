// Package classify turns raw chat event text into typed action events and
// elects the single observer that reacts to each of them.
package classify

import (
	"strconv"
)

type Kind string

const (
	KindAttackRoll        Kind = "attack_roll"
	KindDamageRoll        Kind = "damage_roll"
	KindDamageApplication Kind = "damage_application"
	KindOther             Kind = "other"
)

type Result string

const (
	ResultSuccess      Result = "success"
	ResultFailure      Result = "failure"
	ResultInconclusive Result = "inconclusive"
)

// Event is a parsed view over one raw message.
type Event struct {
	Kind      Kind   `json:"kind"`
	Result    Result `json:"result"`
	ActorRef  string `json:"actor,omitempty"`
	TargetRef string `json:"target,omitempty"`
	Critical  bool   `json:"critical,omitempty"`
	Amount    int    `json:"amount,omitempty"`
	HasAmount bool   `json:"has_amount,omitempty"`
}

// Actionable reports whether the event is a recognised, successful action.
// Inconclusive events are never actionable.
func (e Event) Actionable() bool {
	return e.Kind != KindOther && e.Result == ResultSuccess
}

type Classifier struct {
	attack      patternSet
	damage      patternSet
	application patternSet
	success     patternSet
	dmgSuccess  patternSet
	failure     patternSet
	critical    patternSet
	actor       patternSet
	target      patternSet
	amount      patternSet
}

func New(markers Markers) (*Classifier, error) {
	markers = markers.Merge(DefaultMarkers())

	c := &Classifier{}
	fields := []struct {
		name     string
		patterns []string
		dst      *patternSet
	}{
		{"attack_roll", markers.AttackRoll, &c.attack},
		{"damage_roll", markers.DamageRoll, &c.damage},
		{"damage_application", markers.DamageApplication, &c.application},
		{"success", markers.Success, &c.success},
		{"damage_success", markers.DamageSuccess, &c.dmgSuccess},
		{"failure", markers.Failure, &c.failure},
		{"critical", markers.Critical, &c.critical},
		{"actor", markers.Actor, &c.actor},
		{"target", markers.Target, &c.target},
		{"amount", markers.Amount, &c.amount},
	}
	for _, field := range fields {
		set, err := compileSet(field.name, field.patterns)
		if err != nil {
			return nil, err
		}
		*field.dst = set
	}
	return c, nil
}

// Classify parses raw text. Damage markers are checked before attack markers
// because damage cards often repeat attack wording. Attack rolls need a
// success marker; damage rolls and applications need a damage success marker,
// which by default is the presence of a numeric total. A failure marker
// always wins.
func (c *Classifier) Classify(raw string) Event {
	event := Event{Kind: KindOther, Result: ResultInconclusive}

	switch {
	case c.damage.match(raw):
		event.Kind = KindDamageRoll
	case c.application.match(raw):
		event.Kind = KindDamageApplication
	case c.attack.match(raw):
		event.Kind = KindAttackRoll
	default:
		return event
	}

	event.ActorRef, _ = c.actor.capture(raw)
	event.TargetRef, _ = c.target.capture(raw)
	event.Critical = c.critical.match(raw)
	if value, ok := c.amount.capture(raw); ok {
		if amount, err := strconv.Atoi(value); err == nil {
			event.Amount = amount
			event.HasAmount = true
		}
	}

	failed := c.failure.match(raw)
	succeeded := c.success.match(raw)
	if event.Kind != KindAttackRoll {
		succeeded = c.dmgSuccess.match(raw)
	}

	switch {
	case failed:
		event.Result = ResultFailure
	case succeeded:
		event.Result = ResultSuccess
	}
	return event
}
