//go:build !softrast_debug

package render

const debugAssertions = false
