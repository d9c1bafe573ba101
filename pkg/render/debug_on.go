//go:build softrast_debug

package render

// debugAssertions enables pipeline invariant checks in the hot path.
const debugAssertions = true
