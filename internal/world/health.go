package world

// HealthState is a bounded HP pool.
type HealthState struct {
	Current int `yaml:"current"`
	Max     int `yaml:"max"`
}

func NewHealth(max int) HealthState {
	return HealthState{Current: max, Max: max}
}

// Damage reduces HP, clamped at zero.
func (h *HealthState) Damage(amount int) {
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
}

// Heal raises HP, clamped at Max.
func (h *HealthState) Heal(amount int) {
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

func (h HealthState) Dead() bool { return h.Current <= 0 }

// HealthEffect is a recurring per-turn HP change keyed by cause. Healing
// effects raise HP, otherwise the effect damages. TurnsLeft counts down on
// each tick; the effect is dropped at zero.
type HealthEffect struct {
	Cause     string `yaml:"cause"`
	Amount    int    `yaml:"amount"`
	TurnsLeft int    `yaml:"turns_left"`
	Healing   bool   `yaml:"healing,omitempty"`
}

// EffectTick is one applied effect in a tick result.
type EffectTick struct {
	Cause   string
	Amount  int
	Healing bool
}

// HealthTickResult reports what a round of effect ticks did to an entity.
type HealthTickResult struct {
	Applied []EffectTick
	Died    bool
}

// AddEffect registers an over-time effect, replacing any prior effect with
// the same cause.
func AddEffect(effects []HealthEffect, e HealthEffect) []HealthEffect {
	for i := range effects {
		if effects[i].Cause == e.Cause {
			effects[i] = e
			return effects
		}
	}
	return append(effects, e)
}

// RemoveEffect drops the effect with the given cause; reports whether one
// was present.
func RemoveEffect(effects []HealthEffect, cause string) ([]HealthEffect, bool) {
	for i := range effects {
		if effects[i].Cause == cause {
			return append(effects[:i], effects[i+1:]...), true
		}
	}
	return effects, false
}

// TickEffects applies every active effect once, decrements their counters,
// and drops exhausted ones. The surviving slice and a report are returned.
func TickEffects(h *HealthState, effects []HealthEffect) ([]HealthEffect, HealthTickResult) {
	var res HealthTickResult
	kept := effects[:0]
	for _, e := range effects {
		if e.Healing {
			h.Heal(e.Amount)
		} else {
			h.Damage(e.Amount)
		}
		res.Applied = append(res.Applied, EffectTick{Cause: e.Cause, Amount: e.Amount, Healing: e.Healing})
		e.TurnsLeft--
		if e.TurnsLeft > 0 {
			kept = append(kept, e)
		}
	}
	res.Died = h.Dead()
	return kept, res
}
