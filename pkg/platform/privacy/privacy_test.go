package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	assert.Equal(t, "203.0.113.0", AnonymizeIP("203.0.113.77"))
	assert.Equal(t, "203.0.113.0", AnonymizeIP("::ffff:203.0.113.77"))
	assert.Equal(t, "2001:db8:abcd::", AnonymizeIP("2001:db8:abcd:12::1"))
	assert.Equal(t, "invalid", AnonymizeIP("unknown"))
	assert.Equal(t, "invalid", AnonymizeIP(""))
}
