package regioncache

import (
	"fmt"
)

// CacheTag marks that a region cache has been installed into the App.
// Only one cache may own the render stage.
type CacheTag struct {
	Name string
}

// ensureSingleCache panics when a different cache is already installed and
// reports whether this one was.
func ensureSingleCache(app *App, name string) bool {
	if app == nil {
		panic("ensureSingleCache: app is nil")
	}
	if tag, ok := Resource[CacheTag](app); ok {
		if tag.Name != name {
			app.Logger().Errorf("Multiple region caches installed: %s and %s", tag.Name, name)
			panic(fmt.Sprintf("Multiple region caches installed: %s and %s", tag.Name, name))
		}
		return true
	}
	app.addResources(&CacheTag{Name: name})
	return false
}
