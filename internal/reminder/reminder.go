// Package reminder loads rule reminders and picks the ones that apply to an
// event.
package reminder

import (
	"fmt"
	"sort"
	"strings"
)

type Trigger string

const (
	TriggerAttackRoll        Trigger = "attack_roll"
	TriggerDamageRoll        Trigger = "damage_roll"
	TriggerDamageApplication Trigger = "damage_application"
	TriggerRangeViolation    Trigger = "range_violation"
	TriggerEncumbrance       Trigger = "encumbrance"
)

var knownTriggers = map[Trigger]struct{}{
	TriggerAttackRoll:        {},
	TriggerDamageRoll:        {},
	TriggerDamageApplication: {},
	TriggerRangeViolation:    {},
	TriggerEncumbrance:       {},
}

func IsKnownTrigger(value string) bool {
	_, ok := knownTriggers[Trigger(strings.ToLower(strings.TrimSpace(value)))]
	return ok
}

type Reminder struct {
	Title      string   `json:"title"`
	Trigger    Trigger  `json:"trigger"`
	Tags       []string `json:"tags,omitempty"`
	Body       string   `json:"body"`
	SourceFile string   `json:"source_file,omitempty"`
}

// Catalog indexes reminders by trigger. Reminders for a trigger keep title
// order so output is stable.
type Catalog struct {
	all       []Reminder
	byTrigger map[Trigger][]Reminder
}

func NewCatalog(reminders []Reminder) *Catalog {
	c := &Catalog{byTrigger: make(map[Trigger][]Reminder)}
	c.all = append(c.all, reminders...)
	sort.SliceStable(c.all, func(i, j int) bool {
		return strings.ToLower(c.all[i].Title) < strings.ToLower(c.all[j].Title)
	})
	for _, r := range c.all {
		c.byTrigger[r.Trigger] = append(c.byTrigger[r.Trigger], r)
	}
	return c
}

func (c *Catalog) For(trigger Trigger) []Reminder {
	if c == nil {
		return nil
	}
	return c.byTrigger[trigger]
}

func (c *Catalog) All() []Reminder {
	if c == nil {
		return nil
	}
	return c.all
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.all)
}

// Render formats a reminder as a single chat line.
func Render(r Reminder) string {
	body := strings.Join(strings.Fields(r.Body), " ")
	if body == "" {
		return fmt.Sprintf("Rule reminder: %s", r.Title)
	}
	return fmt.Sprintf("Rule reminder: %s. %s", r.Title, body)
}

// Builtin is used when a project configures no reminder paths.
func Builtin() *Catalog {
	return NewCatalog([]Reminder{
		{
			Title:   "Critical hits",
			Trigger: TriggerDamageRoll,
			Tags:    []string{"combat"},
			Body:    "A critical attack doubles the damage dice; flat modifiers are added once.",
		},
		{
			Title:   "Reach",
			Trigger: TriggerRangeViolation,
			Tags:    []string{"combat", "positioning"},
			Body:    "Melee attacks need adjacency. A reach weapon also strikes exactly one square further away.",
		},
		{
			Title:   "Overloaded",
			Trigger: TriggerEncumbrance,
			Tags:    []string{"exploration"},
			Body:    "An encumbered character moves at half speed; an overloaded one cannot move.",
		},
	})
}
