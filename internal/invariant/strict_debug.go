//go:build debug

package invariant

const strictDefault = true
