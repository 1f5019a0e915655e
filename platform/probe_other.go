//go:build !linux

package platform

// ROCm only ships on Linux; every other platform gets the OCP pair.

func hasROCm() bool { return false }

func isMI300() bool { return false }
