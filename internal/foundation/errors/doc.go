// Package errors provides the classified error type used across mappages.
//
// Every failure the generator can report maps onto one category, and the
// CLI adapter turns categories into process exit codes:
//
//   - CategoryParse: the catalog is not well-formed YAML or not a sequence of mappings (exit 1)
//   - CategoryValidation: a record lacks mapName, or a slug is unusable or duplicated (exit 1)
//   - CategoryFileSystem: a page could not be written (exit 2)
//   - CategoryConfig: the configuration file, flags or environment are invalid (exit 7)
//
// Example usage:
//
//	err := errors.MissingFieldError("mapName").
//		WithContext(errors.ContextRecordIndex, 3).
//		Build()
package errors
