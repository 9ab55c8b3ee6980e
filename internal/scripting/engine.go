// Package scripting wraps a single gopher-lua VM exposing a small
// world-manipulation API to content authors. Worlds that ship a scripts
// directory get a runScript trigger action; everything else works without
// this package loaded.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// Host hands the engine the live world and view. Loads replace the world
// wholesale, so scripts must resolve it through the host on every call
// rather than capturing a pointer at startup.
type Host interface {
	CurrentWorld() *world.World
	CurrentView() *view.View
}

// Engine wraps one Lua VM. Single-goroutine access only; the turn loop is
// the sole caller.
type Engine struct {
	vm   *lua.LState
	host Host
	log  *zap.Logger
}

// NewEngine creates the VM, registers the API, and loads every .lua file
// in the scripts directory. A missing directory returns (nil, nil): the
// feature is simply off.
func NewEngine(scriptsDir string, host Host, log *zap.Logger) (*Engine, error) {
	entries, err := os.ReadDir(scriptsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read scripts dir: %w", err)
	}

	vm := lua.NewState()
	e := &Engine{vm: vm, host: host, log: log}
	e.register()

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(scriptsDir, entry.Name())
		if err := vm.DoFile(path); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		log.Debug("loaded lua script", zap.String("file", path))
	}
	return e, nil
}

// Close shuts the VM down.
func (e *Engine) Close() {
	if e != nil && e.vm != nil {
		e.vm.Close()
	}
}

// Run invokes a named global function with no arguments. Script errors are
// returned to the action executor, which aborts the batch like any other
// fatal action error.
func (e *Engine) Run(function string) error {
	fn := e.vm.GetGlobal(function)
	if fn == lua.LNil {
		return fmt.Errorf("script function %q not defined", function)
	}
	e.vm.Push(fn)
	if err := e.vm.PCall(0, 0, nil); err != nil {
		return fmt.Errorf("script %q: %w", function, err)
	}
	return nil
}

// register installs the world API under the `game` global.
func (e *Engine) register() {
	api := e.vm.NewTable()

	set := func(name string, fn lua.LGFunction) {
		e.vm.SetField(api, name, e.vm.NewFunction(fn))
	}

	set("say", func(L *lua.LState) int {
		e.host.CurrentView().Push(view.TriggeredEvent{Text: L.CheckString(1)})
		return 0
	})
	set("add_flag", func(L *lua.LState) int {
		name := L.CheckString(1)
		e.host.CurrentWorld().Player.Flags.Set(world.SimpleFlag(name, e.host.CurrentWorld().Turn))
		return 0
	})
	set("remove_flag", func(L *lua.LState) int {
		e.host.CurrentWorld().Player.Flags.Remove(L.CheckString(1))
		return 0
	})
	set("has_flag", func(L *lua.LState) int {
		L.Push(lua.LBool(e.host.CurrentWorld().Player.Flags.Has(L.CheckString(1))))
		return 1
	})
	set("award_points", func(L *lua.LState) int {
		amount := L.CheckInt(1)
		reason := L.OptString(2, "")
		e.host.CurrentWorld().Player.AwardPoints(amount)
		e.host.CurrentView().Push(view.PointsAwarded{Amount: amount, Reason: reason})
		return 0
	})
	set("turn", func(L *lua.LState) int {
		L.Push(lua.LNumber(e.host.CurrentWorld().Turn))
		return 1
	})
	set("player_room", func(L *lua.LState) int {
		if room, ok := e.host.CurrentWorld().Player.Location.Room(); ok {
			L.Push(lua.LString(string(room)))
		} else {
			L.Push(lua.LNil)
		}
		return 1
	})
	set("spawn_item", func(L *lua.LState) int {
		item := world.Id(L.CheckString(1))
		loc, err := world.ParseLocation(L.CheckString(2))
		if err == nil {
			err = e.host.CurrentWorld().SetItemLocation(item, loc)
		}
		if err != nil {
			e.log.Warn("script spawn_item failed", zap.Error(err))
			L.Push(lua.LBool(false))
		} else {
			L.Push(lua.LBool(true))
		}
		return 1
	})
	set("despawn_item", func(L *lua.LState) int {
		if err := e.host.CurrentWorld().SetItemLocation(world.Id(L.CheckString(1)), world.Nowhere()); err != nil {
			e.log.Warn("script despawn_item failed", zap.Error(err))
		}
		return 0
	})

	e.vm.SetGlobal("game", api)
}
