package world

// Trigger pairs an event predicate and a guard expression with the actions
// to run when both are satisfied. The event predicate is just one more
// condition; Always-kind events make a trigger purely state-driven.
//
// A trigger with OnlyOnce set is permanently ineligible once Fired.
type Trigger struct {
	Name       string    `yaml:"name"`
	Note       string    `yaml:"note,omitempty"`
	OnlyOnce   bool      `yaml:"only_once,omitempty"`
	Event      Condition `yaml:"event"`
	Conditions CondExpr  `yaml:"conditions,omitempty"`
	Actions    []Action  `yaml:"actions,omitempty"`
	Fired      bool      `yaml:"fired,omitempty"`
}

// Eligible reports whether the trigger may still fire at all.
func (t *Trigger) Eligible() bool {
	return !(t.OnlyOnce && t.Fired)
}

// Ready reports whether the trigger's event and guard are both satisfied
// this turn.
func (t *Trigger) Ready(w *World, events []Event) bool {
	if !t.Event.Holds(w, events) {
		return false
	}
	return t.Conditions.Eval(w, events)
}

// IsAmbient reports whether the trigger's event predicate is an ambient
// spinner match; such triggers fire in the dedicated post-movement pass.
func (t *Trigger) IsAmbient() bool {
	return t.Event.Kind == CondAmbient
}

// TriggersContainCondition reports whether any trigger in the list carries
// a condition satisfying match, in its event predicate or guard tree.
// Callers use it to detect whether an event was consumed by a pass.
func TriggersContainCondition(list []*Trigger, match func(*Condition) bool) bool {
	for _, t := range list {
		if match(&t.Event) {
			return true
		}
		if t.Conditions.FindPred(match) != nil {
			return true
		}
	}
	return false
}
