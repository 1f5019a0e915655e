//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// kfdNodesGlob matches the per-device name files exported by the ROCm
// KFD driver, e.g. /sys/class/kfd/kfd/topology/nodes/1/name -> "gfx942".
const kfdNodesGlob = "/sys/class/kfd/kfd/topology/nodes/*/name"

// mi300Targets are the gfx targets of the MI300 family, the only
// accelerators whose float8 hardware uses the fnuz encodings.
var mi300Targets = []string{"gfx940", "gfx941", "gfx942"}

// hasROCm reports whether the ROCm stack is present on this host.
func hasROCm() bool {
	if _, err := os.Stat("/sys/class/kfd/kfd"); err == nil {
		return true
	}
	return os.Getenv("ROCR_VISIBLE_DEVICES") != "" || os.Getenv("HIP_VISIBLE_DEVICES") != ""
}

// isMI300 reports whether any visible ROCm device is MI300-class.
func isMI300() bool {
	names, err := filepath.Glob(kfdNodesGlob)
	if err != nil {
		return false
	}
	for _, path := range names {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		name := strings.TrimSpace(string(data))
		for _, target := range mi300Targets {
			if strings.HasPrefix(name, target) {
				return true
			}
		}
	}
	return false
}
