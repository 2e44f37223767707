package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsFirstFailure(t *testing.T) {
	v := New(
		MinLength(3, "too short"),
		HasUpperAndLower("needs mixed case"),
	)

	err := v.Validate("ab")
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "too short", vErr.Message)

	assert.EqualError(t, v.Validate("abc"), "needs mixed case")
	assert.NoError(t, v.Validate("Abc"))
}

func TestValidateStopsAtFirstFailure(t *testing.T) {
	evaluated := 0
	counting := Rule{
		Message: "never reached",
		Check: func(string) bool {
			evaluated++
			return false
		},
	}

	v := New(MinLength(10, "too short"), counting)
	assert.EqualError(t, v.Validate("short"), "too short")
	assert.Zero(t, evaluated, "rules after the first failure must not run")

	assert.EqualError(t, v.Validate("long enough"), "never reached")
	assert.Equal(t, 1, evaluated)
}

func TestEmptyChainAcceptsEverything(t *testing.T) {
	assert.NoError(t, New().Validate(""))
}

func TestWithDoesNotModifyReceiver(t *testing.T) {
	base := New(MinLength(1, "empty"))
	strict := base.With(HasUpperAndLower("mixed"))

	assert.NoError(t, base.Validate("a"))
	assert.EqualError(t, strict.Validate("a"), "mixed")
}

func TestCheck(t *testing.T) {
	v := New(NotBlank("blank"), MinLength(6, "short"))

	assert.Equal(t, Result{Message: "blank"}, v.Check("   "))
	assert.Equal(t, Result{Message: "short"}, v.Check("abc"))
	assert.Equal(t, Result{Valid: true}, v.Check("abcdef"))
}

func TestMinLengthCountsRunes(t *testing.T) {
	v := New(MinLength(3, "short"))
	assert.NoError(t, v.Validate("日本語"))
	assert.Error(t, v.Validate("日本"))
}
