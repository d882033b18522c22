package helpers

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referenceCodeFormat = regexp.MustCompile(`^APP-[0-9A-Z]+-[0-9A-Z]{6}$`)

func TestNewReferenceCodeFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.Regexp(t, referenceCodeFormat, NewReferenceCode())
	}
}

func TestReferenceCodeAtEncodesMillis(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	code := referenceCodeAt(at)
	require.Regexp(t, referenceCodeFormat, code)
	assert.Equal(t, "APP-LOYW3V28-", code[:13])
}

func TestNullIfBlank(t *testing.T) {
	blank := "   "
	padded := "  Istanbul "

	assert.Nil(t, NullIfBlank(nil))
	assert.Nil(t, NullIfBlank(&blank))
	require.NotNil(t, NullIfBlank(&padded))
	assert.Equal(t, "Istanbul", *NullIfBlank(&padded))
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%ada%", LikePattern(" ada "))
	assert.Equal(t, `%50\%\_off\\%`, LikePattern(`50%_off\`))
}
