package sysmsg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dostermann/bildschirmtext/cept"
)

func TestBuildKnownCode(t *testing.T) {
	b := Build(PageNotFound)
	assert.NotEmpty(t, b)
}

func TestBuildWithPriceIncludesAmount(t *testing.T) {
	b := Build(ConfirmWithPrice, 150)
	assert.Contains(t, string(b), "1,50")
}

func TestBuildUnknownCodeFallsBackToGenericText(t *testing.T) {
	b := Build(9999)
	assert.Contains(t, string(b), "9999")
}

func TestCustomIncludesCursorPositioning(t *testing.T) {
	b := Custom("hello")
	assert.NotEmpty(t, b)
	assert.True(t, bytes.HasPrefix(b, cept.SetCursor(24, 1)))
}
