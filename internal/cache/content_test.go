package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "portfolio:projects:g0:featured=true", Key("projects", 0, "featured=true"))
	assert.Equal(t, "portfolio:skills:g12:all", Key("skills", 12, "all"))
	assert.NotEqual(t, Key("skills", 1, "all"), Key("skills", 2, "all"))
	assert.Equal(t, "portfolio:skills:gen", generationKey("skills"))
}
