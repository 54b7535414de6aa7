package skyraid

import "time"

// Buff is a timed player effect (rapid fire or shield).
// Inactive -> Active(d) on pickup; Active -> Inactive when Remaining runs out.
type Buff struct {
	Active    bool
	Remaining time.Duration
}

// Activate starts the buff or refreshes it to d. Durations never stack.
func (b *Buff) Activate(d time.Duration) {
	if d <= 0 {
		return
	}
	b.Active = true
	b.Remaining = d
}

// Decay advances the buff by one frame.
func (b *Buff) Decay(frame time.Duration) {
	if !b.Active {
		return
	}
	b.Remaining -= frame
	if b.Remaining <= 0 {
		b.Active = false
		b.Remaining = 0
	}
}

// Seconds returns the whole seconds remaining, rounded up. 0 when inactive.
func (b Buff) Seconds() int {
	if !b.Active {
		return 0
	}
	return int((b.Remaining + time.Second - 1) / time.Second)
}

// Buffs holds every timed effect the player can carry.
type Buffs struct {
	RapidFire Buff
	Shield    Buff
}

// Decay advances all buffs by one frame.
func (b *Buffs) Decay(frame time.Duration) {
	b.RapidFire.Decay(frame)
	b.Shield.Decay(frame)
}
