// Package shared holds cross-cutting helpers that belong to no single
// domain package. Today that is the testutil subpackage with slog capture
// helpers for assertion-friendly log testing.
package shared
