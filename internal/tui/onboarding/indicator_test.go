package onboarding

import (
	"testing"

	"github.com/mark3labs/onboardr/internal/tui/testfixtures"
	"github.com/stretchr/testify/assert"
)

func TestIndicator_FollowsIndex(t *testing.T) {
	ind := NewIndicator(4)
	assert.Equal(t, 4, ind.Total())
	assert.Equal(t, 0, ind.Page())
	assert.Equal(t, "●○○○", testfixtures.Plain(ind.View()))

	ind.OnIndex(2)
	assert.Equal(t, 2, ind.Page())
	assert.Equal(t, "○○●○", testfixtures.Plain(ind.View()))
}

func TestIndicator_Clamps(t *testing.T) {
	ind := NewIndicator(3)

	ind.OnIndex(7)
	assert.Equal(t, 2, ind.Page())

	ind.OnIndex(-1)
	assert.Equal(t, 0, ind.Page())
}

func TestIndicator_SinglePage(t *testing.T) {
	ind := NewIndicator(0)
	assert.Equal(t, 1, ind.Total())
	assert.Equal(t, "●", testfixtures.Plain(ind.View()))
}
