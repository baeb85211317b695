package regioncache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

func TestAppBuilder_Stateless(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.False(t, app.stateful)
	assert.Equal(t, State(0), app.initialState)
	assert.Equal(t, State(0), app.finalState)
	assert.Len(t, app.stages, len(defaultStages))
}

func TestAppBuilder_UseStates(t *testing.T) {
	app := NewAppBuilder().UseStates(1, 10).Build()

	assert.True(t, app.stateful)
	assert.Equal(t, State(1), app.initialState)
	assert.Equal(t, State(10), app.finalState)
	assert.Len(t, app.systems[Update.Name], 10)
}

func TestAppBuilder_Build_WithModules(t *testing.T) {
	tests := []struct {
		name    string
		modules int
	}{
		{"none", 0},
		{"one", 1},
		{"several", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewAppBuilder()
			var modules []*MockModule
			for i := 0; i < tt.modules; i++ {
				m := &MockModule{}
				modules = append(modules, m)
				builder.UseModule(m)
			}

			builder.Build()

			assert.Len(t, builder.modules, tt.modules)
			for _, m := range modules {
				assert.True(t, m.installed)
			}
		})
	}
}

func TestAppBuilder_UseRenderer(t *testing.T) {
	builder := NewAppBuilder().UseRenderer(RendererHeadless, RendererOptions{Frames: 2})
	assert.Equal(t, []Module{HeadlessModule{Frames: 2}}, builder.modules)

	app := builder.UseModule(RegionCacheModule{}).Build()
	device, ok := Resource[RenderDevice](app)
	assert.True(t, ok)
	assert.True(t, device.Headless)

	assert.PanicsWithValue(t, `unknown renderer "vulkan"`, func() {
		NewAppBuilder().UseRenderer("vulkan", RendererOptions{})
	})
}
