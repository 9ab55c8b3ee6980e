package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

type testHost struct {
	w *world.World
	v *view.View
}

func (h *testHost) CurrentWorld() *world.World { return h.w }
func (h *testHost) CurrentView() *view.View    { return h.v }

func newHost() *testHost {
	w := world.New(3)
	w.Rooms["den"] = &world.Room{Id: "den", Name: "Den", Desc: "Cozy."}
	w.Items["bone"] = &world.Item{Id: "bone", Name: "bone", Location: world.Nowhere()}
	w.Player.Location = world.InRoom("den")
	return &testHost{w: w, v: view.New()}
}

func TestMissingScriptsDirDisablesEngine(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "absent"), newHost(), zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestRunInvokesScriptAgainstWorld(t *testing.T) {
	dir := t.TempDir()
	script := `
function reward()
	game.say("A hidden mechanism whirs.")
	game.add_flag("mechanism_found")
	game.award_points(3, "curiosity")
	game.spawn_item("bone", "room:den")
end
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reward.lua"), []byte(script), 0o644))

	host := newHost()
	e, err := NewEngine(dir, host, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, e)
	defer e.Close()

	require.NoError(t, e.Run("reward"))

	assert.True(t, host.w.Player.Flags.Has("mechanism_found"))
	assert.Equal(t, 3, host.w.Player.Score)
	assert.Equal(t, world.InRoom("den"), host.w.Items["bone"].Location)

	frame := host.v.Flush()
	require.NotEmpty(t, frame.Entries)
	assert.Equal(t, view.TriggeredEvent{Text: "A hidden mechanism whirs."}, frame.Entries[0].Item)
}

func TestRunUnknownFunctionFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.lua"), []byte("-- nothing"), 0o644))
	e, err := NewEngine(dir, newHost(), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.Error(t, e.Run("nope"))
}
