package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/brand-studio-api/internal/constants"
)

// GetLimit reads the limit query parameter. Missing or invalid values fall
// back to the default page size and large values are capped.
func GetLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return constants.DefaultPageSize
	}
	return ClampLimit(limit)
}

// ClampLimit applies the default and the cap to a requested limit
func ClampLimit(limit int) int {
	if limit < constants.MinPageSize {
		return constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	return limit
}

// QueryBool reads a boolean query parameter; anything unparsable is false.
func QueryBool(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(c.Query(key))
	return v
}

// QueryString returns a pointer to a non-empty query parameter
func QueryString(c *gin.Context, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}
