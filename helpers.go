package main

import (
	"math"
	"os"
	"strings"
)

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique index")
}
