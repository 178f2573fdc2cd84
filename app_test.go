package lightlab

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

type mockModule struct {
	installed *int
}

func (m mockModule) Install(app *App, cmd *Commands) {
	*m.installed++
	cmd.AddResources(NewMockResource1("from module"))
}

func TestApp_addResources(t *testing.T) {
	app := NewApp()
	app.addResources(NewMockResource1("one"), NewMockResource2("two"))

	r1, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Equal(t, "one", r1.name)

	r2, ok := Resource[MockResource2](app)
	require.True(t, ok)
	assert.Equal(t, "two", r2.name)

	_, ok = Resource[Panel](app)
	assert.False(t, ok)
}

func TestApp_addResourcesPanics(t *testing.T) {
	app := NewApp()
	app.addResources(NewMockResource1("one"))

	assert.PanicsWithValue(t, "*lightlab.MockResource1 is already in resources", func() {
		app.addResources(NewMockResource1("two"))
	})
	assert.Panics(t, func() {
		app.addResources(MockResource2{name: "by value"})
	})
}

func TestApp_UseModules(t *testing.T) {
	count := 0
	app := NewApp().UseModules(mockModule{installed: &count})

	assert.Equal(t, 1, count)
	r, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Equal(t, "from module", r.name)
}

func TestApp_SystemsResolveResources(t *testing.T) {
	app := NewApp()
	app.addResources(NewMockResource1("one"))

	var got string
	app.UseSystem(System(func(r *MockResource1, cmd *Commands) {
		got = r.name
		assert.NotNil(t, cmd)
	}))
	app.Step()

	assert.Equal(t, "one", got)
	assert.EqualValues(t, 1, app.Frame())
}

func TestApp_UnresolvedSystemDependencyPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(r *MockResource2) {}))

	assert.Panics(t, app.Step)
}

func TestApp_StagesRunInOrder(t *testing.T) {
	app := NewApp()
	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}

	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("update")))
	app.UseSystem(System(record("prelude")).InStage(Prelude))

	custom := Stage{Name: "Custom"}
	app.UseStage(custom, AfterStage(Update))
	app.UseSystem(System(record("custom")).InStage(custom))

	app.Step()
	assert.Equal(t, []string{"prelude", "update", "custom", "render"}, order)
}

func TestApp_UseSystemUnknownStagePanics(t *testing.T) {
	app := NewApp()
	assert.Panics(t, func() {
		app.UseSystem(System(func() {}).InStage(Stage{Name: "Nope"}))
	})
	assert.Panics(t, func() {
		app.UseStage(Stage{Name: "X"}, BeforeStage(Stage{Name: "Nope"}))
	})
}

func TestApp_CommandsAreDeferredUntilStageEnd(t *testing.T) {
	type Marker struct{ v int }

	app := NewApp()
	var seenInUpdate, seenInRender int
	app.UseSystem(System(func(cmd *Commands) {
		if app.Frame() == 0 {
			cmd.AddEntity(Marker{v: 1})
		}
		MakeQuery1[Marker](cmd).Map(func(EntityId, *Marker) bool {
			seenInUpdate++
			return true
		})
	}))
	app.UseSystem(System(func(cmd *Commands) {
		MakeQuery1[Marker](cmd).Map(func(EntityId, *Marker) bool {
			seenInRender++
			return true
		})
	}).InStage(Render))

	app.Step()
	assert.Equal(t, 0, seenInUpdate)
	assert.Equal(t, 1, seenInRender)
}

func TestApp_RemoveEntity(t *testing.T) {
	type Marker struct{}

	app := NewApp()
	cmd := app.Commands()
	eid := cmd.AddEntity(Marker{})
	app.FlushCommands()
	require.Len(t, cmd.GetAllComponents(eid), 1)

	cmd.RemoveEntity(eid)
	app.FlushCommands()
	assert.False(t, app.ecs.hasEntity(eid))
}

func TestApp_RunStopsOnQuit(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(cmd *Commands) {
		if app.Frame() == 2 {
			cmd.Quit()
		}
	}))
	app.Run()

	assert.True(t, app.Quitting())
	assert.EqualValues(t, 3, app.Frame())
}

func TestApp_Logger(t *testing.T) {
	app := NewApp()
	assert.NotNil(t, app.Logger())

	var out, errOut bytes.Buffer
	app.addResources(NewLoggerTo(&out, &errOut, "test", false))

	app.Logger().Infof("hello %d", 1)
	app.Logger().Debugf("hidden")
	app.Logger().Warnf("careful")

	assert.Contains(t, out.String(), "[test] INFO: hello 1")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, errOut.String(), "[test] WARN: careful")

	app.Logger().SetDebug(true)
	app.Logger().Debugf("shown")
	assert.Contains(t, out.String(), "DEBUG: shown")
}
