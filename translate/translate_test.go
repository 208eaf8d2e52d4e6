package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golang.org/x/text/language"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLanguage(language.AmericanEnglish)

	assert.Equal("ip empty", From("ip empty"))
	assert.Equal("line 3 'nop' missing", From("line %d '%v' %v", 3, "nop", "missing"))
	assert.Equal("illegal instruction at 4,096", From("illegal instruction at %d", 4096))
}
