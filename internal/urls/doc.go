// Package urls centralizes links to the project documentation site.
//
// CLI error paths and troubleshooting output reference these constants
// so the links live in one place.
package urls
