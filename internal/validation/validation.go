package validation

import (
	"os"
	"strconv"
	"strings"
)

func ValidateLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func ValidateLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

func MaxWriterLength() int {
	maxStr := os.Getenv("MAX_WRITER_LENGTH")
	if maxStr == "" {
		return 40
	}
	max, err := strconv.Atoi(maxStr)
	if err != nil || max < 1 {
		return 40
	}
	return max
}

func MaxContentLength() int {
	maxStr := os.Getenv("MAX_CONTENT_LENGTH")
	if maxStr == "" {
		return 1000
	}
	max, err := strconv.Atoi(maxStr)
	if err != nil || max < 1 {
		return 1000
	}
	return max
}

func TrimAndLimit(s string, max int) string {
	s = strings.TrimSpace(s)
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}
