package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]string{"A": "1"}
	b := map[string]string{"B": "2", "C": "3"}

	got := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]string{"A": "1", "B": "2", "C": "3"}, got)

	// Early stop must not visit the second sequence.
	var seen int
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		seen++
		break
	}
	assert.Equal(1, seen)

	assert.Empty(maps.Collect(IterSeq2Concat[string, string]()))
}
