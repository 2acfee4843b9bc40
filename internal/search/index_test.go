package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexNormalisesAndDeduplicates(t *testing.T) {
	ix := NewIndex([]string{"tddd97", "TDDD97", " tdde01 ", "", "TATA24"})
	assert.Equal(t, []string{"TDDD97", "TDDE01", "TATA24"}, ix.Codes())
}

func TestFilterBySubstring(t *testing.T) {
	ix := NewIndex([]string{"TDDD97", "TDDE01", "TATA24"})

	assert.Equal(t, []string{"TDDD97", "TDDE01"}, ix.FilterBySubstring("TDD", 0))
	assert.Equal(t, []string{"TDDD97", "TDDE01"}, ix.FilterBySubstring("tdd", 0))
	assert.Empty(t, ix.FilterBySubstring("", 0))
	assert.Empty(t, ix.FilterBySubstring("XYZ", 0))
}

func TestFilterBySubstringCapped(t *testing.T) {
	codes := make([]string, 100)
	for i := range codes {
		codes[i] = fmt.Sprintf("TD%04d", i)
	}
	ix := NewIndex(codes)

	results := ix.FilterBySubstring("TD", 60)
	assert.Len(t, results, 60)
	assert.Equal(t, "TD0000", results[0])
}

func TestNearestMatchesRanking(t *testing.T) {
	ix := NewIndex([]string{"TDDD97", "TDDE01", "TATA24", "TDDD96"})

	// Distance 1 for TDDD97 and TDDD96; ties keep index order.
	assert.Equal(t, []string{"TDDD97", "TDDD96"}, ix.NearestMatches("TDDD95", 2))
	assert.Equal(t, []string{"TDDD97", "TDDD96", "TDDE01", "TATA24"}, ix.NearestMatches("TDDD97", 10))
}

func TestNearestMatchesEmptyIndex(t *testing.T) {
	ix := NewIndex(nil)
	assert.Empty(t, ix.NearestMatches("TDDD97", 5))
	assert.Empty(t, ix.FilterBySubstring("TDD", 0))
}
