package envelope

import (
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	t.Run("hello", func(t *testing.T) {
		v, err := Decode([]byte(`{"type":"hello","observer":"gm"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		hello, ok := v.(*Hello)
		if !ok || hello.Observer != "gm" {
			t.Fatalf("expected hello from gm, got %#v", v)
		}
	})

	t.Run("message", func(t *testing.T) {
		v, err := Decode([]byte(`{
		  "type":"message",
		  "id":"m1",
		  "author":"player-1",
		  "text":"<div data-roll-type=\"attack\"></div>",
		  "observers":[{"id":"gm","privileged":true,"active":true},{"id":"player-1","active":true}]
		}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		msg, ok := v.(*Message)
		if !ok {
			t.Fatalf("expected message, got %#v", v)
		}
		converted := msg.ToAssist("gm")
		if converted.Self != "gm" || len(converted.Observers) != 2 || !converted.Observers[0].Privileged {
			t.Fatalf("unexpected conversion: %+v", converted)
		}
	})

	t.Run("attack with null target", func(t *testing.T) {
		v, err := Decode([]byte(`{"type":"attack","attacker":{"x":0,"y":0,"width":1,"height":1},"target":null,"weapon":"Longsword"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		attack, ok := v.(*Attack)
		if !ok || attack.Target != nil || attack.Weapon != "Longsword" {
			t.Fatalf("unexpected attack: %#v", v)
		}
	})

	t.Run("attack with target", func(t *testing.T) {
		v, err := Decode([]byte(`{"type":"attack","attacker":{"x":0,"y":0,"width":1,"height":1},"target":{"x":200,"y":0,"width":2,"height":2},"reach":true}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		req := v.(*Attack).ToAssist()
		if req.Target == nil || req.Target.Width != 2 || !req.HasReach {
			t.Fatalf("unexpected request: %+v", req)
		}
	})

	t.Run("encumbrance", func(t *testing.T) {
		v, err := Decode([]byte(`{"type":"encumbrance","actor":"Brom","capacity":60,"items":[{"name":"Plate","weight":50}]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		enc, ok := v.(*Encumbrance)
		if !ok || len(enc.Items) != 1 {
			t.Fatalf("unexpected encumbrance: %#v", v)
		}
	})
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"type":`},
		{"missing type", `{"observer":"gm"}`},
		{"unknown type", `{"type":"dance"}`},
		{"hello without observer", `{"type":"hello"}`},
		{"message without observers", `{"type":"message","text":"hi"}`},
		{"attack without attacker", `{"type":"attack","weapon":"Longsword"}`},
		{"fractional width", `{"type":"attack","attacker":{"x":0,"y":0,"width":1.5,"height":1}}`},
		{"negative weight", `{"type":"encumbrance","actor":"Brom","capacity":60,"items":[{"name":"Rock","weight":-1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if !errors.Is(err, ErrInvalidEnvelope) {
				t.Fatalf("expected ErrInvalidEnvelope, got %v", err)
			}
		})
	}
}
