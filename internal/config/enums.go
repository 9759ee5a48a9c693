package config

import (
	"git.home.luguber.info/inful/mappages/internal/foundation/normalization"
	"git.home.luguber.info/inful/mappages/internal/render"
)

// DuplicatePolicy decides what happens when two records share a slug.
type DuplicatePolicy string

const (
	// DuplicateOverwrite keeps writing; the later record's page wins.
	DuplicateOverwrite DuplicatePolicy = "overwrite"
	// DuplicateFail stops the run before the second page is written.
	DuplicateFail DuplicatePolicy = "fail"
)

var duplicatePolicies = normalization.NewEnumNormalizer("duplicate policy", map[string]DuplicatePolicy{
	"overwrite": DuplicateOverwrite,
	"fail":      DuplicateFail,
}, DuplicateOverwrite)

var bodyFormats = normalization.NewEnumNormalizer("body format", map[string]render.Format{
	"text":     render.FormatText,
	"markdown": render.FormatMarkdown,
}, render.FormatText)

// NormalizeDuplicatePolicy parses raw. Empty input yields DuplicateOverwrite.
func NormalizeDuplicatePolicy(raw string) (DuplicatePolicy, error) {
	return duplicatePolicies.NormalizeWithValidation(raw)
}

// NormalizeBodyFormat parses raw. Empty input yields render.FormatText.
func NormalizeBodyFormat(raw string) (render.Format, error) {
	return bodyFormats.NormalizeWithValidation(raw)
}

// DuplicatePolicyValues lists accepted duplicate policy names.
func DuplicatePolicyValues() []string {
	return duplicatePolicies.ValidValues()
}
