package runtime

import (
	"strings"

	"golang.org/x/sys/cpu"
)

// Features lists the SIMD extensions the coregex prefilter can use on
// this machine, for diagnostics.
func Features() []string {
	var out []string
	if cpu.X86.HasSSE42 {
		out = append(out, "sse4.2")
	}
	if cpu.X86.HasSSSE3 {
		out = append(out, "ssse3")
	}
	if cpu.X86.HasAVX2 {
		out = append(out, "avx2")
	}
	if cpu.ARM64.HasASIMD {
		out = append(out, "asimd")
	}
	return out
}

// FeatureString returns Features joined by spaces, or "none".
func FeatureString() string {
	f := Features()
	if len(f) == 0 {
		return "none"
	}
	return strings.Join(f, " ")
}
