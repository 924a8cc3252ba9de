package correlate

import (
	"context"
	"time"
)

const (
	DefaultAttackRollTimeout = 120 * time.Second
	DefaultDamageRollTimeout = 30 * time.Second
)

// Attack is what an attack roll leaves behind for the damage roll.
type Attack struct {
	Critical  bool
	MessageID string
}

// Damage is a rolled damage total waiting to be applied.
type Damage struct {
	Amount    int
	Critical  bool
	MessageID string
}

// Tracker keeps attack rolls and damage rolls in separate stores with their
// own timeouts. Attack rolls wait on user-paced damage rolls and get the
// longer window.
type Tracker struct {
	attacks *Cache[Attack]
	damage  *Cache[Damage]
}

func NewTracker(attackTimeout, damageTimeout time.Duration, now func() time.Time) *Tracker {
	if attackTimeout <= 0 {
		attackTimeout = DefaultAttackRollTimeout
	}
	if damageTimeout <= 0 {
		damageTimeout = DefaultDamageRollTimeout
	}
	return &Tracker{
		attacks: NewCache[Attack](attackTimeout, now),
		damage:  NewCache[Damage](damageTimeout, now),
	}
}

func (t *Tracker) RecordAttack(key Key, attack Attack) {
	t.attacks.Put(key, attack)
}

// ResolveDamageRoll consumes the matching attack, if any, and parks the damage
// for its application. The returned damage carries the attack's critical flag;
// a miss leaves it false.
func (t *Tracker) ResolveDamageRoll(key Key, amount int, messageID string) (Damage, bool) {
	attack, matched := t.attacks.Take(key)
	damage := Damage{Amount: amount, Critical: attack.Critical, MessageID: messageID}
	t.damage.Put(key, damage)
	return damage, matched
}

// ResolveApplication consumes the pending damage roll for key.
func (t *Tracker) ResolveApplication(key Key) (Damage, bool) {
	return t.damage.Take(key)
}

func (t *Tracker) Sweep() int {
	return t.attacks.Sweep() + t.damage.Sweep()
}

// Pending returns the number of stored attacks and damage rolls.
func (t *Tracker) Pending() (attacks, damage int) {
	return t.attacks.Len(), t.damage.Len()
}

// Run sweeps both stores every interval until ctx is done. Lazy expiry in Take
// stays authoritative; this only bounds memory.
func (t *Tracker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Sweep()
		}
	}
}
