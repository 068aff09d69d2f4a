package onboarding

import (
	"charm.land/bubbles/v2/paginator"
	"github.com/mark3labs/onboardr/internal/tui/theme"
)

// Indicator mirrors the flow's current index as a row of page dots. It only
// displays; it never drives navigation.
type Indicator struct {
	p paginator.Model
}

// NewIndicator creates a dot indicator for total pages. The page count is
// fixed for the lifetime of the indicator.
func NewIndicator(total int) *Indicator {
	if total < 1 {
		total = 1
	}
	s := theme.Current().S()

	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = 1
	p.TotalPages = total
	p.ActiveDot = s.DotActive.Render("●")
	p.InactiveDot = s.DotInactive.Render("○")
	return &Indicator{p: p}
}

// OnIndex sets the displayed page, clamped to the page range.
func (ind *Indicator) OnIndex(index int) {
	switch {
	case index < 0:
		index = 0
	case index >= ind.p.TotalPages:
		index = ind.p.TotalPages - 1
	}
	ind.p.Page = index
}

// Page returns the displayed page.
func (ind *Indicator) Page() int {
	return ind.p.Page
}

// Total returns the page count.
func (ind *Indicator) Total() int {
	return ind.p.TotalPages
}

// View renders the dots.
func (ind *Indicator) View() string {
	return ind.p.View()
}
