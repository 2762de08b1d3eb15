package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

	name := objectName("/products/p1/", "image/png", now)
	assert.True(t, strings.HasPrefix(name, "products/p1/"), name)
	assert.True(t, strings.HasSuffix(name, "-20240305143000.png"), name)

	assert.True(t, strings.HasSuffix(objectName("x", "application/zip", now), ".bin"))
}

func TestObjectFromURL(t *testing.T) {
	name, ok := objectFromURL("bucket", "https://storage.googleapis.com/bucket/products/p1/a.png")
	assert.True(t, ok)
	assert.Equal(t, "products/p1/a.png", name)

	_, ok = objectFromURL("bucket", "https://storage.googleapis.com/other/products/a.png")
	assert.False(t, ok)

	_, ok = objectFromURL("bucket", "https://example.com/bucket/a.png")
	assert.False(t, ok)
}
