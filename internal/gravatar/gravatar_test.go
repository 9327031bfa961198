package gravatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLIsDeterministic(t *testing.T) {
	first := URL("a@x.com")
	second := URL("a@x.com")
	assert.Equal(t, first, second)
}

func TestURLNormalizesEmail(t *testing.T) {
	assert.Equal(t, URL("a@x.com"), URL("  A@X.COM  "))
}

func TestURLShape(t *testing.T) {
	url := URL("a@x.com")
	assert.Contains(t, url, "https://www.gravatar.com/avatar/")
	assert.Contains(t, url, "s=200")
	assert.Contains(t, url, "r=pg")
	assert.Contains(t, url, "d=mm")
	assert.NotEqual(t, URL("a@x.com"), URL("b@x.com"))
}
