package shaders

import (
	_ "embed"
)

//go:embed cached.wgsl
var CachedWGSL string
