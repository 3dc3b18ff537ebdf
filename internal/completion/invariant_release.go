//go:build !debug

package completion

const debugBuild = false
