//go:build !debug

package invariant

const strictDefault = false
