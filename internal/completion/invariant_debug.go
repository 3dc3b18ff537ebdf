//go:build debug

package completion

const debugBuild = true
