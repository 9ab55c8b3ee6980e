package handler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// consumeUse ticks an item's consumable counter when the used ability is
// one of its consume-on triggers, firing the outcome at zero uses.
func consumeUse(d *Deps, itemId world.Id, ability world.AbilityKind) {
	w := d.World
	item, ok := w.Items[itemId]
	if !ok || item.Consumable == nil || !item.Consumable.ConsumesOn(ability) {
		return
	}
	c := item.Consumable
	if c.UsesLeft > 0 {
		c.UsesLeft--
	}
	if c.UsesLeft > 0 {
		return
	}
	switch c.Outcome {
	case world.ConsumeDespawn:
		if err := w.SetItemLocation(itemId, world.Nowhere()); err != nil {
			d.Log.Warn("consumable despawn failed", zap.Error(err))
			return
		}
		d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("The %s is used up.", item.Name)})
	case world.ConsumeReplaceInventory:
		if err := w.SetItemLocation(itemId, world.Nowhere()); err != nil {
			d.Log.Warn("consumable replace failed", zap.Error(err))
			return
		}
		if err := w.SetItemLocation(c.Replacement, world.InInventory()); err != nil {
			d.Log.Warn("consumable replacement missing",
				zap.String("item", string(c.Replacement)), zap.Error(err))
		}
	case world.ConsumeReplaceCurrentRoom:
		room, err := w.PlayerRoom()
		if err != nil {
			return
		}
		if err := w.SetItemLocation(itemId, world.Nowhere()); err != nil {
			d.Log.Warn("consumable replace failed", zap.Error(err))
			return
		}
		if err := w.SetItemLocation(c.Replacement, world.InRoom(room.Id)); err != nil {
			d.Log.Warn("consumable replacement missing",
				zap.String("item", string(c.Replacement)), zap.Error(err))
		}
	}
}
