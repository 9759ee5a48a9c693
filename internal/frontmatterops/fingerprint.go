// Package frontmatterops holds operations over decoded front-matter fields.
package frontmatterops

import (
	"errors"
	"strings"

	"git.home.luguber.info/inful/mappages/internal/frontmatter"
	"github.com/inful/mdfp"
)

// FingerprintField is the front-matter key the fingerprint is stored under.
var FingerprintField = mdfp.FingerprintField

// ComputeFingerprint computes the content fingerprint of a page.
//
// Canonicalization:
//   - the fingerprint field itself is excluded
//   - fields are serialized as sorted YAML with LF newlines
//   - a single trailing newline is trimmed from the serialized YAML before hashing
func ComputeFingerprint(fields map[string]any, body []byte) (string, error) {
	if fields == nil {
		return "", errors.New("fields map is nil")
	}

	fieldsForHash := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == FingerprintField {
			continue
		}
		fieldsForHash[k] = v
	}

	frontmatterForHash := ""
	if len(fieldsForHash) > 0 {
		serialized, err := frontmatter.SerializeYAML(fieldsForHash, frontmatter.Style{Newline: "\n"})
		if err != nil {
			return "", err
		}
		frontmatterForHash = trimSingleTrailingNewline(string(serialized))
	}

	return mdfp.CalculateFingerprintFromParts(frontmatterForHash, string(body)), nil
}

// StampFingerprint computes the fingerprint and stores it in fields.
func StampFingerprint(fields map[string]any, body []byte) (string, error) {
	fp, err := ComputeFingerprint(fields, body)
	if err != nil {
		return "", err
	}
	fields[FingerprintField] = fp
	return fp, nil
}

func trimSingleTrailingNewline(s string) string {
	if before, ok := strings.CutSuffix(s, "\r\n"); ok {
		return before
	}
	if before, ok := strings.CutSuffix(s, "\n"); ok {
		return before
	}
	return s
}
