package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"rulesaide/internal/assist"
	"rulesaide/internal/classify"
	"rulesaide/internal/config"
	"rulesaide/internal/geometry"
	"rulesaide/internal/reminder"
	"rulesaide/internal/store"
)

type CheckRangeInput struct {
	Attacker geometry.Footprint  `json:"attacker" jsonschema:"attacking token footprint"`
	Target   *geometry.Footprint `json:"target,omitempty" jsonschema:"targeted token footprint"`
	Targets  int                 `json:"targets,omitempty" jsonschema:"number of selected targets"`
	Weapon   string              `json:"weapon,omitempty" jsonschema:"weapon name from the catalogue"`
	Reach    bool                `json:"reach,omitempty" jsonschema:"grant reach from a source other than the weapon"`
}

type ClassifyMessageInput struct {
	Text string `json:"text" jsonschema:"raw chat message text"`
}

type ShouldActInput struct {
	Self      string              `json:"self" jsonschema:"observer asking the question"`
	Author    string              `json:"author,omitempty" jsonschema:"observer that authored the message"`
	Observers []classify.Observer `json:"observers" jsonschema:"observers currently connected"`
}

type GetGrudgesInput struct {
	Victim string `json:"victim" jsonschema:"character that took the damage"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of entries"`
}

type GetEncumbranceInput struct {
	Actor string `json:"actor" jsonschema:"character name"`
}

type ListRemindersInput struct {
	Trigger string `json:"trigger,omitempty" jsonschema:"attack_roll, damage_roll, damage_application, range_violation or encumbrance"`
}

type ListWeaponsInput struct{}

type CheckRangeOutput struct {
	Allowed   bool     `json:"allowed"`
	Reason    string   `json:"reason,omitempty"`
	Distance  float64  `json:"distance,omitempty"`
	MaxRange  float64  `json:"max_range,omitempty"`
	Reminders []string `json:"reminders,omitempty"`
}

type ClassifyMessageOutput struct {
	Kind       string `json:"kind"`
	Result     string `json:"result"`
	Actor      string `json:"actor,omitempty"`
	Target     string `json:"target,omitempty"`
	Critical   bool   `json:"critical"`
	Amount     int    `json:"amount,omitempty"`
	Actionable bool   `json:"actionable"`
}

type ShouldActOutput struct {
	Elected   string `json:"elected,omitempty"`
	ShouldAct bool   `json:"should_act"`
}

type GrudgeOutput struct {
	Attacker   string `json:"attacker"`
	Amount     int    `json:"amount"`
	Critical   bool   `json:"critical"`
	RecordedAt string `json:"recorded_at"`
}

type GrudgeTotalOutput struct {
	Attacker  string `json:"attacker"`
	Total     int    `json:"total"`
	Hits      int    `json:"hits"`
	Criticals int    `json:"criticals"`
}

type GetGrudgesOutput struct {
	Victim  string              `json:"victim"`
	Entries []GrudgeOutput      `json:"entries"`
	Totals  []GrudgeTotalOutput `json:"totals"`
}

type EncumbranceOutput struct {
	Actor     string  `json:"actor"`
	Found     bool    `json:"found"`
	Load      float64 `json:"load,omitempty"`
	Capacity  float64 `json:"capacity,omitempty"`
	Level     string  `json:"level,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

type ReminderOutput struct {
	Title   string   `json:"title"`
	Trigger string   `json:"trigger"`
	Tags    []string `json:"tags"`
	Text    string   `json:"text"`
}

type ListRemindersOutput struct {
	Reminders []ReminderOutput `json:"reminders"`
}

type WeaponOutput struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	BaseRange float64  `json:"base_range,omitempty"`
	Traits    []string `json:"traits,omitempty"`
}

type ListWeaponsOutput struct {
	Version int            `json:"version"`
	Weapons []WeaponOutput `json:"weapons"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "check_range",
		Description: "Check whether an attack is legal at the current token positions",
	}, s.handleCheckRange)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "classify_message",
		Description: "Classify raw chat message text as an attack roll, damage roll or damage application",
	}, s.handleClassifyMessage)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "should_act",
		Description: "Report which connected observer reacts to a message",
	}, s.handleShouldAct)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_grudges",
		Description: "List recorded damage against a character and per-attacker totals",
	}, s.handleGetGrudges)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_encumbrance",
		Description: "Return the last saved encumbrance snapshot for a character",
	}, s.handleGetEncumbrance)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_reminders",
		Description: "List rule reminders, optionally for one trigger",
	}, s.handleListReminders)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_weapons",
		Description: "Return the weapon catalogue",
	}, s.handleListWeapons)
}

func (s *Server) handleCheckRange(ctx context.Context, req *sdk.CallToolRequest, input CheckRangeInput) (*sdk.CallToolResult, CheckRangeOutput, error) {
	outcome, err := s.assistant.CheckAttack(ctx, assist.AttackRequest{
		Attacker: input.Attacker,
		Target:   input.Target,
		Targets:  input.Targets,
		Weapon:   input.Weapon,
		HasReach: input.Reach,
	})
	if err != nil {
		return nil, CheckRangeOutput{}, err
	}

	out := CheckRangeOutput{
		Allowed:  outcome.Allowed,
		Reason:   string(outcome.Reason),
		Distance: outcome.Distance,
		MaxRange: outcome.MaxRange,
	}
	if !outcome.Allowed {
		out.Reminders = s.assistant.RemindersFor(reminder.TriggerRangeViolation)
	}
	return nil, out, nil
}

func (s *Server) handleClassifyMessage(ctx context.Context, req *sdk.CallToolRequest, input ClassifyMessageInput) (*sdk.CallToolResult, ClassifyMessageOutput, error) {
	event := s.assistant.Classifier().Classify(input.Text)
	return nil, ClassifyMessageOutput{
		Kind:       string(event.Kind),
		Result:     string(event.Result),
		Actor:      event.ActorRef,
		Target:     event.TargetRef,
		Critical:   event.Critical,
		Amount:     event.Amount,
		Actionable: event.Actionable(),
	}, nil
}

func (s *Server) handleShouldAct(ctx context.Context, req *sdk.CallToolRequest, input ShouldActInput) (*sdk.CallToolResult, ShouldActOutput, error) {
	if input.Self == "" {
		return nil, ShouldActOutput{}, fmt.Errorf("self is required")
	}
	elected, _ := classify.Elect(input.Observers, input.Author)
	return nil, ShouldActOutput{
		Elected:   elected,
		ShouldAct: classify.ShouldAct(input.Self, input.Observers, input.Author),
	}, nil
}

func (s *Server) handleGetGrudges(ctx context.Context, req *sdk.CallToolRequest, input GetGrudgesInput) (*sdk.CallToolResult, GetGrudgesOutput, error) {
	if input.Victim == "" {
		return nil, GetGrudgesOutput{}, fmt.Errorf("victim is required")
	}
	if s.db == nil {
		return nil, GetGrudgesOutput{}, fmt.Errorf("no database configured")
	}

	entries, err := s.db.ListGrudges(ctx, input.Victim, input.Limit)
	if err != nil {
		return nil, GetGrudgesOutput{}, err
	}
	totals, err := s.db.GrudgeTotals(ctx, input.Victim)
	if err != nil {
		return nil, GetGrudgesOutput{}, err
	}

	out := GetGrudgesOutput{
		Victim:  input.Victim,
		Entries: make([]GrudgeOutput, 0, len(entries)),
		Totals:  make([]GrudgeTotalOutput, 0, len(totals)),
	}
	for _, entry := range entries {
		out.Entries = append(out.Entries, grudgeOutputFromStore(entry))
	}
	for _, total := range totals {
		out.Totals = append(out.Totals, GrudgeTotalOutput(total))
	}
	return nil, out, nil
}

func (s *Server) handleGetEncumbrance(ctx context.Context, req *sdk.CallToolRequest, input GetEncumbranceInput) (*sdk.CallToolResult, EncumbranceOutput, error) {
	if input.Actor == "" {
		return nil, EncumbranceOutput{}, fmt.Errorf("actor is required")
	}
	if s.db == nil {
		return nil, EncumbranceOutput{}, fmt.Errorf("no database configured")
	}

	snapshot, err := s.db.GetEncumbrance(ctx, input.Actor)
	if err != nil {
		return nil, EncumbranceOutput{}, err
	}
	if snapshot == nil {
		return nil, EncumbranceOutput{Actor: input.Actor}, nil
	}
	return nil, EncumbranceOutput{
		Actor:     snapshot.Actor,
		Found:     true,
		Load:      snapshot.Load,
		Capacity:  snapshot.Capacity,
		Level:     snapshot.Level,
		UpdatedAt: snapshot.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (s *Server) handleListReminders(ctx context.Context, req *sdk.CallToolRequest, input ListRemindersInput) (*sdk.CallToolResult, ListRemindersOutput, error) {
	trigger := strings.ToLower(strings.TrimSpace(input.Trigger))
	if trigger != "" && !reminder.IsKnownTrigger(trigger) {
		return nil, ListRemindersOutput{}, fmt.Errorf("unknown trigger %q", input.Trigger)
	}

	items := s.reminders.All()
	if trigger != "" {
		items = s.reminders.For(reminder.Trigger(trigger))
	}

	out := ListRemindersOutput{Reminders: make([]ReminderOutput, 0, len(items))}
	for _, r := range items {
		out.Reminders = append(out.Reminders, ReminderOutput{
			Title:   r.Title,
			Trigger: string(r.Trigger),
			Tags:    append([]string{}, r.Tags...),
			Text:    reminder.Render(r),
		})
	}
	return nil, out, nil
}

func (s *Server) handleListWeapons(ctx context.Context, req *sdk.CallToolRequest, input ListWeaponsInput) (*sdk.CallToolResult, ListWeaponsOutput, error) {
	return nil, weaponsOutputFromConfig(s.weapons), nil
}

func weaponsOutputFromConfig(catalog *config.WeaponCatalog) ListWeaponsOutput {
	if catalog == nil {
		return ListWeaponsOutput{Weapons: []WeaponOutput{}}
	}
	out := ListWeaponsOutput{
		Version: catalog.Version,
		Weapons: make([]WeaponOutput, 0, len(catalog.Weapons)),
	}
	for _, w := range catalog.Weapons {
		out.Weapons = append(out.Weapons, WeaponOutput{
			Name:      w.Name,
			Category:  w.Category,
			BaseRange: w.BaseRange,
			Traits:    append([]string(nil), w.Traits...),
		})
	}
	return out
}

func grudgeOutputFromStore(entry store.GrudgeEntry) GrudgeOutput {
	return GrudgeOutput{
		Attacker:   entry.Attacker,
		Amount:     entry.Amount,
		Critical:   entry.Critical,
		RecordedAt: entry.RecordedAt.UTC().Format(time.RFC3339),
	}
}
