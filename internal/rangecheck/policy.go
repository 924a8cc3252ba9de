package rangecheck

type Reason string

const (
	ReasonNone          Reason = ""
	ReasonRangedTooFar  Reason = "ranged_out_of_range"
	ReasonMeleeTooFar   Reason = "melee_needs_adjacency"
	ReasonNoTarget      Reason = "no_target"
	ReasonTooManyTarget Reason = "too_many_targets"
)

// Outcome is the result of a legality check. Distance and MaxRange are only
// populated on failure.
type Outcome struct {
	Allowed  bool    `json:"allowed"`
	Reason   Reason  `json:"reason,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	MaxRange float64 `json:"max_range,omitempty"`
}

func Allow() Outcome {
	return Outcome{Allowed: true}
}

func Deny(reason Reason, distance, maxRange float64) Outcome {
	return Outcome{Reason: reason, Distance: distance, MaxRange: maxRange}
}

// Policy holds the melee thresholds in game distance units. ReachMax is the
// single distance a reach weapon may strike at beyond contact.
type Policy struct {
	MeleeMax float64
	ReachMax float64
}

func DefaultPolicy() Policy {
	return Policy{MeleeMax: 2, ReachMax: 4}
}

// Validate applies the range rules for the profile's category. Melee legality
// is a discrete check: contact, or exactly ReachMax with reach. Distances in
// between are never admitted.
func (p Policy) Validate(distance float64, profile WeaponProfile, hasReach bool) Outcome {
	switch profile.Category {
	case CategoryRanged:
		return p.ranged(distance, profile)
	case CategoryThrown:
		meleeMax := p.MeleeMax
		if hasReach {
			meleeMax = p.ReachMax
		}
		if distance <= meleeMax {
			return p.melee(distance, hasReach)
		}
		return p.ranged(distance, profile)
	case CategoryTouch:
		return p.melee(distance, false)
	default:
		return p.melee(distance, hasReach)
	}
}

func (p Policy) ranged(distance float64, profile WeaponProfile) Outcome {
	maxRange := profile.BaseRange * 2
	if distance <= maxRange {
		return Allow()
	}
	return Deny(ReasonRangedTooFar, distance, maxRange)
}

func (p Policy) melee(distance float64, hasReach bool) Outcome {
	if distance == 0 {
		return Allow()
	}
	if hasReach && distance == p.ReachMax {
		return Allow()
	}
	maxRange := 0.0
	if hasReach {
		maxRange = p.ReachMax
	}
	return Deny(ReasonMeleeTooFar, distance, maxRange)
}
