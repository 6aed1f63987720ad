// Package params parses gin path and query parameters.
package params

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var errInvalidID = errors.New("must be a positive integer")

// ID parses the named path parameter as a positive int64.
func ID(c *gin.Context, name string) (int64, error) {
	return parseID(c.Param(name))
}

// OptionalID parses the named query parameter; an absent or empty value yields nil.
func OptionalID(c *gin.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Bool reports whether the named query parameter is a truthy value (1, true, yes).
func Bool(c *gin.Context, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
