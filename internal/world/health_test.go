package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthClamping(t *testing.T) {
	h := NewHealth(20)
	h.Damage(25)
	assert.Equal(t, 0, h.Current)
	assert.True(t, h.Dead())
	h.Heal(100)
	assert.Equal(t, 20, h.Current)
}

func TestAddEffectReplacesByCause(t *testing.T) {
	var fx []HealthEffect
	fx = AddEffect(fx, HealthEffect{Cause: "poison", Amount: 2, TurnsLeft: 5})
	fx = AddEffect(fx, HealthEffect{Cause: "poison", Amount: 4, TurnsLeft: 2})
	assert.Len(t, fx, 1)
	assert.Equal(t, 4, fx[0].Amount)

	fx = AddEffect(fx, HealthEffect{Cause: "bandage", Amount: 1, TurnsLeft: 3, Healing: true})
	assert.Len(t, fx, 2)
}

func TestRemoveEffect(t *testing.T) {
	fx := []HealthEffect{{Cause: "burn", Amount: 1, TurnsLeft: 3}}
	fx, removed := RemoveEffect(fx, "burn")
	assert.True(t, removed)
	assert.Empty(t, fx)
	_, removed = RemoveEffect(fx, "burn")
	assert.False(t, removed)
}

func TestTickEffectsAppliesAndExpires(t *testing.T) {
	h := NewHealth(30)
	fx := []HealthEffect{
		{Cause: "poison", Amount: 3, TurnsLeft: 2},
		{Cause: "salve", Amount: 1, TurnsLeft: 1, Healing: true},
	}

	fx, res := TickEffects(&h, fx)
	assert.Equal(t, 30-3+1, h.Current)
	assert.Len(t, res.Applied, 2)
	assert.False(t, res.Died)
	assert.Len(t, fx, 1, "the one-turn salve expires")

	fx, res = TickEffects(&h, fx)
	assert.Equal(t, 25, h.Current)
	assert.Empty(t, fx)
	assert.False(t, res.Died)
}

func TestTickEffectsReportsDeath(t *testing.T) {
	h := NewHealth(2)
	fx := []HealthEffect{{Cause: "venom", Amount: 5, TurnsLeft: 3}}
	_, res := TickEffects(&h, fx)
	assert.True(t, res.Died)
}
