package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSupplyLabels(t *testing.T) {
	got := normalizeSupplyLabels(map[int64]string{
		1: "  FARINHA DE TRIGO ",
		2: "   ",
		3: "",
		4: "ARROZ",
	})
	assert.Equal(t, map[int64]string{1: "FARINHA DE TRIGO", 4: "ARROZ"}, got)
	assert.Empty(t, normalizeSupplyLabels(nil))
}

func TestFillSupplyLabelsSkipsFilledRows(t *testing.T) {
	// The empty-label guard lives in the UPDATE's WHERE clause.
	t.Skip("Requires Postgres instance")
}
