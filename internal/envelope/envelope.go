// Package envelope defines the JSON frames exchanged with a host over the
// relay and in replay files.
package envelope

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"rulesaide/internal/assist"
	"rulesaide/internal/classify"
	"rulesaide/internal/encumbrance"
	"rulesaide/internal/geometry"
	"rulesaide/internal/rangecheck"
)

type Type string

const (
	TypeHello       Type = "hello"
	TypeMessage     Type = "message"
	TypeAttack      Type = "attack"
	TypeEncumbrance Type = "encumbrance"

	TypeWelcome  Type = "welcome"
	TypeOutcome  Type = "outcome"
	TypeReaction Type = "reaction"
	TypeError    Type = "error"
)

var ErrInvalidEnvelope = errors.New("invalid envelope")

//go:embed envelope.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("envelope.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

type Hello struct {
	Type     Type   `json:"type"`
	Observer string `json:"observer"`
}

type Message struct {
	Type      Type                `json:"type"`
	ID        string              `json:"id,omitempty"`
	Author    string              `json:"author,omitempty"`
	Text      string              `json:"text"`
	Observers []classify.Observer `json:"observers"`
}

// ToAssist converts the frame into a message seen by observer self.
func (m Message) ToAssist(self string) assist.Message {
	return assist.Message{
		ID:        m.ID,
		Author:    m.Author,
		Self:      self,
		Text:      m.Text,
		Observers: m.Observers,
	}
}

type Attack struct {
	Type     Type                `json:"type"`
	Attacker geometry.Footprint  `json:"attacker"`
	Target   *geometry.Footprint `json:"target"`
	Targets  int                 `json:"targets,omitempty"`
	Weapon   string              `json:"weapon,omitempty"`
	Reach    bool                `json:"reach,omitempty"`
}

func (a Attack) ToAssist() assist.AttackRequest {
	return assist.AttackRequest{
		Attacker: a.Attacker,
		Target:   a.Target,
		Targets:  a.Targets,
		Weapon:   a.Weapon,
		HasReach: a.Reach,
	}
}

type Encumbrance struct {
	Type     Type               `json:"type"`
	Actor    string             `json:"actor"`
	Capacity float64            `json:"capacity"`
	Items    []encumbrance.Item `json:"items,omitempty"`
}

type Welcome struct {
	Type     Type   `json:"type"`
	Observer string `json:"observer"`
}

type OutcomeReply struct {
	Type      Type               `json:"type"`
	Outcome   rangecheck.Outcome `json:"outcome"`
	Reminders []string           `json:"reminders,omitempty"`
}

type ReactionReply struct {
	Type     Type             `json:"type"`
	Reaction *assist.Reaction `json:"reaction"`
}

type EncumbranceReply struct {
	Type   Type                      `json:"type"`
	Result *assist.EncumbranceResult `json:"result"`
}

type ErrorReply struct {
	Type    Type   `json:"type"`
	Message string `json:"message"`
}

func NewError(err error) ErrorReply {
	return ErrorReply{Type: TypeError, Message: err.Error()}
}

// Decode validates data against the envelope schema and returns one of
// Hello, Message, Attack or Encumbrance.
func Decode(data []byte) (any, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling envelope schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if err := s.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	var head struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	var out any
	switch head.Type {
	case TypeHello:
		out = &Hello{}
	case TypeMessage:
		out = &Message{}
	case TypeAttack:
		out = &Attack{}
	case TypeEncumbrance:
		out = &Encumbrance{}
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidEnvelope, head.Type)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	return out, nil
}
