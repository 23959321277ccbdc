package iframer_test

import (
	"testing"

	"github.com/fwojciec/iframer"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := iframer.Errorf(iframer.ENOTFOUND, "provider for %q not found", "https://example.com")

	assert.Equal(t, iframer.ENOTFOUND, iframer.ErrorCode(err))
	assert.Equal(t, "provider for \"https://example.com\" not found", iframer.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, iframer.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, iframer.ErrorMessage(nil))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, iframer.EINTERNAL, iframer.ErrorCode(assert.AnError))
}

func TestParseDimension(t *testing.T) {
	t.Parallel()

	t.Run("parses integers", func(t *testing.T) {
		t.Parallel()

		got := iframer.ParseDimension("640")
		if assert.NotNil(t, got) {
			assert.Equal(t, 640, *got)
		}
	})

	t.Run("trims whitespace and truncates fractions", func(t *testing.T) {
		t.Parallel()

		got := iframer.ParseDimension(" 360.7 ")
		if assert.NotNil(t, got) {
			assert.Equal(t, 360, *got)
		}
	})

	t.Run("returns nil for non-numeric, empty, zero and non-finite values", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"", "abc", "100%", "0", "NaN", "Inf", "   "} {
			assert.Nil(t, iframer.ParseDimension(s), "input %q", s)
		}
	})
}

func TestEmbed_IsZero(t *testing.T) {
	t.Parallel()

	var nilEmbed *iframer.Embed
	assert.True(t, nilEmbed.IsZero())
	assert.True(t, (&iframer.Embed{}).IsZero())
	assert.False(t, (&iframer.Embed{HTML: "<iframe></iframe>"}).IsZero())
}
