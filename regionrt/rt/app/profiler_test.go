package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfiler_StatsString(t *testing.T) {
	p := NewProfiler()
	p.BeginScope("drain")
	p.EndScope("drain")
	p.BeginScope("render")
	p.EndScope("render")
	p.BeginScope("drain")
	p.EndScope("drain")
	p.SetCount("uploaded", 4)
	p.SetCount("cells", 2)

	assert.Equal(t, []string{"drain", "render"}, p.Order)

	stats := p.GetStatsString()
	assert.Contains(t, stats, "drain")
	assert.Less(t, strings.Index(stats, "cells"), strings.Index(stats, "uploaded"), "counters are sorted")

	p.Reset()
	assert.Zero(t, p.Scopes["drain"])
}
