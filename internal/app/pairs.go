package app

import (
	"errors"
	"strings"
)

var errBadPair = errors.New("expected key=value")

func cutPair(s string) (string, string, bool) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}
