package truncate

import (
	"strings"

	"github.com/randalmurphal/tokenlens/registry"
)

// truncateEnd keeps the longest prefix that, with the suffix appended,
// fits the budget. Binary search over rune length.
func (t *Truncator) truncateEnd(text string, m *registry.Model, maxTokens int) string {
	target := maxTokens - t.counter.Count(t.suffix, m)
	if target <= 0 {
		return t.suffix
	}

	runes := []rune(text)
	low, high := 0, len(runes)
	for low < high {
		mid := (low + high + 1) / 2
		if t.fits(string(runes[:mid]), m, target) {
			low = mid
		} else {
			high = mid - 1
		}
	}

	if low == 0 {
		return t.suffix
	}
	return string(runes[:low]) + t.suffix
}

// truncateStart keeps the longest tail that fits after the marker.
func (t *Truncator) truncateStart(text string, m *registry.Model, maxTokens int) string {
	target := maxTokens - t.counter.Count(t.suffix, m)
	if target <= 0 {
		return t.suffix
	}

	runes := []rune(text)
	low, high := 0, len(runes)
	for low < high {
		mid := (low + high) / 2
		if t.fits(string(runes[mid:]), m, target) {
			high = mid
		} else {
			low = mid + 1
		}
	}

	if low >= len(runes) {
		return t.suffix
	}
	return t.suffix + string(runes[low:])
}

// truncateMiddle keeps roughly half the budget from each end with the
// marker between.
func (t *Truncator) truncateMiddle(text string, m *registry.Model, maxTokens int) string {
	target := maxTokens - t.counter.Count(t.suffix, m)
	if target <= 0 {
		return t.suffix
	}
	half := target / 2

	runes := []rune(text)
	keepStart := t.prefixForBudget(runes, m, half)

	tailStart := len(runes) - keepStart
	if tailStart < keepStart {
		tailStart = keepStart
	}

	var sb strings.Builder
	sb.WriteString(string(runes[:keepStart]))
	sb.WriteString(t.suffix)
	if tailStart < len(runes) {
		sb.WriteString(string(runes[tailStart:]))
	}
	return sb.String()
}

// prefixForBudget finds how many leading runes fit in the token budget.
func (t *Truncator) prefixForBudget(runes []rune, m *registry.Model, budget int) int {
	low, high := 0, len(runes)
	for low < high {
		mid := (low + high + 1) / 2
		if t.fits(string(runes[:mid]), m, budget) {
			low = mid
		} else {
			high = mid - 1
		}
	}
	return low
}
