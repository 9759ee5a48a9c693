package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type policy string

const (
	policyOverwrite policy = "overwrite"
	policyFail      policy = "fail"
)

func newPolicyNormalizer() *EnumNormalizer[policy] {
	return NewEnumNormalizer("policy", map[string]policy{
		"overwrite": policyOverwrite,
		"fail":      policyFail,
	}, policyOverwrite)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newPolicyNormalizer()

	tests := []struct {
		name     string
		input    string
		expected policy
	}{
		{"exact match", "fail", policyFail},
		{"case insensitive", "FAIL", policyFail},
		{"with spaces", "  overwrite  ", policyOverwrite},
		{"invalid input returns default", "explode", policyOverwrite},
		{"empty returns default", "", policyOverwrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestEnumNormalizer_NormalizeWithValidation(t *testing.T) {
	n := newPolicyNormalizer()

	got, err := n.NormalizeWithValidation(" Fail ")
	require.NoError(t, err)
	require.Equal(t, policyFail, got)

	got, err = n.NormalizeWithValidation("")
	require.NoError(t, err)
	require.Equal(t, policyOverwrite, got)

	_, err = n.NormalizeWithValidation("explode")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid policy")
	require.Contains(t, err.Error(), "[fail overwrite]")
}

func TestEnumNormalizer_ValidValuesAreSorted(t *testing.T) {
	require.Equal(t, []string{"fail", "overwrite"}, newPolicyNormalizer().ValidValues())
}
