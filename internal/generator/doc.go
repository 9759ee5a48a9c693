// Package generator runs the map page pipeline: it loads the catalog,
// derives one page per record and writes the pages in document order.
//
// Runs are sequential and fail fast. Pages written before a failing record
// stay on disk.
package generator
