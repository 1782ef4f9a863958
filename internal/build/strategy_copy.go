//go:build !expand

package build

// Strategy names the materialization strategy compiled into this binary.
const Strategy = "copy"
