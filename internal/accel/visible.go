package accel

import (
	"strconv"
	"strings"
)

// VisibleDevicesEnv is the variable the CUDA runtime uses to mask devices.
const VisibleDevicesEnv = "CUDA_VISIBLE_DEVICES"

// visibleSelector decides which physical devices are visible.
// all is true when the mask is unset. Otherwise tokens lists the mask
// entries in order, each either a numeric index or a "GPU-" UUID prefix.
type visibleSelector struct {
	all    bool
	tokens []string
}

// parseVisible interprets a CUDA_VISIBLE_DEVICES value the way the CUDA
// runtime does: entries are processed left to right and parsing stops at the
// first invalid entry; "-1" or an empty value hides every device.
func parseVisible(value string, set bool) visibleSelector {
	if !set {
		return visibleSelector{all: true}
	}
	var tokens []string
	for _, part := range strings.Split(value, ",") {
		tok := strings.Trim(strings.TrimSpace(part), `"'`)
		if tok == "" {
			break
		}
		if n, err := strconv.Atoi(tok); err == nil {
			if n < 0 {
				break
			}
			tokens = append(tokens, strconv.Itoa(n))
			continue
		}
		if strings.HasPrefix(tok, "GPU-") || strings.HasPrefix(tok, "MIG-") {
			tokens = append(tokens, tok)
			continue
		}
		break
	}
	return visibleSelector{tokens: tokens}
}

// resolve maps visible ordinals to physical indices. uuidOf returns the UUID
// of physical device i; physical is the number of physical devices.
func (v visibleSelector) resolve(physical int, uuidOf func(int) string) []int {
	if v.all {
		out := make([]int, physical)
		for i := range out {
			out[i] = i
		}
		return out
	}
	seen := make(map[int]bool, len(v.tokens))
	var out []int
	for _, tok := range v.tokens {
		idx := -1
		if n, err := strconv.Atoi(tok); err == nil {
			if n < physical {
				idx = n
			}
		} else {
			for i := 0; i < physical; i++ {
				if u := uuidOf(i); u != "" && strings.HasPrefix(u, tok) {
					idx = i
					break
				}
			}
		}
		if idx < 0 || seen[idx] {
			break
		}
		seen[idx] = true
		out = append(out, idx)
	}
	return out
}
