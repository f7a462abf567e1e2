package handler // handler defines http handlers

import (
	"errors"
	"strconv"
	"strings"
)

// parseUintParam parses a positive decimal id from a path or query
// parameter.  Zero and malformed values are rejected.
func parseUintParam(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("invalid id")
	}
	return n, nil
}
