package regioncache

import (
	"fmt"
	"reflect"
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

func TestApp_changeState(t *testing.T) {
	app := NewAppBuilder().UseStates(1, 2).Build()
	app.state = 1

	app.changeState(2)
	assert.Equal(t, State(2), app.nextState)
	assert.True(t, app.stateTransitioning)

	app.executeChangeState(2)
	assert.Equal(t, State(2), app.state)
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	got, ok := Resource[MockResource2](app)
	require.True(t, ok)
	assert.Same(t, resource2, got)

	assert.Panics(t, func() { app.addResources(MockResource1{}) }, "resources must be pointers")
}

func TestApp_StageOrder(t *testing.T) {
	var calls []string
	record := func(name string) func(*Commands) {
		return func(*Commands) { calls = append(calls, name) }
	}

	app := NewAppBuilder().Build()
	// Registered out of order on purpose.
	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("prelude")).InStage(Prelude))
	app.UseSystem(System(record("pre-render")).InStage(PreRender))
	app.UseSystem(System(record("update")))
	app.UseSystem(System(record("finale")).InStage(Finale))

	app.Step()
	assert.Equal(t, []string{"prelude", "update", "pre-render", "render", "finale"}, calls)
	assert.Equal(t, uint64(1), app.Frames())
}

func TestApp_UseStage(t *testing.T) {
	var calls []string
	app := NewAppBuilder().Build()
	upload := Stage{Name: "Upload"}
	app.UseStage(upload, AfterStage(PreRender))
	app.UseSystem(System(func() { calls = append(calls, "upload") }).InStage(upload))
	app.UseSystem(System(func() { calls = append(calls, "render") }).InStage(Render))

	app.Step()
	assert.Equal(t, []string{"upload", "render"}, calls)

	assert.PanicsWithValue(t, "Stage Missing not found", func() {
		app.UseStage(Stage{Name: "Other"}, BeforeStage(Stage{Name: "Missing"}))
	})
}

func TestApp_ResourceInjection(t *testing.T) {
	app := NewAppBuilder().Build()
	res := NewMockResource1("injected")
	app.Commands().AddResources(res)

	var seen *MockResource1
	app.UseSystem(System(func(r *MockResource1, cmd *Commands) {
		seen = r
		cmd.Exit()
	}))

	assert.False(t, app.Step(), "Exit stops the app after the frame")
	assert.Same(t, res, seen)
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	app := NewAppBuilder().Build()
	app.UseSystem(System(func(r *MockResource2) {}))
	assert.Panics(t, func() { app.Step() })
}

func TestApp_StatefulRun(t *testing.T) {
	const (
		Loading State = iota
		Playing
		Done
	)
	var calls []string
	app := NewAppBuilder().UseStates(Loading, Done).Build()
	app.UseSystem(System(func(cmd *Commands) {
		calls = append(calls, "load")
		cmd.ChangeState(Playing)
	}).InState(OnExecute(Loading)))
	app.UseSystem(System(func() { calls = append(calls, "enter-play") }).InState(OnEnter(Playing)))
	app.UseSystem(System(func(cmd *Commands) {
		calls = append(calls, "play")
		cmd.ChangeState(Done)
	}).InState(OnExecute(Playing)))
	app.UseSystem(System(func() { calls = append(calls, "exit-done") }).InState(OnExit(Done)))

	app.Run()
	assert.Equal(t, []string{"load", "enter-play", "play", "exit-done"}, calls)
}

func TestApp_StatefulSystemInStatelessAppPanics(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.PanicsWithValue(t, "Trying to use a stateful system in a stateless app.", func() {
		app.UseSystem(System(func() {}).InState(OnEnter(1)))
	})
}
