package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstance(t *testing.T) {
	inst, err := ParseInstance("order-query", "10.0.0.4:50052")
	require.NoError(t, err)
	assert.Equal(t, "order-query", inst.Name)
	assert.Equal(t, "10.0.0.4", inst.Host)
	assert.Equal(t, 50052, inst.Port)
	assert.Equal(t, "10.0.0.4:50052", inst.Address())

	v6, err := ParseInstance("order-query", "[::1]:9000")
	require.NoError(t, err)
	assert.Equal(t, "[::1]:9000", v6.Address())
}

func TestParseInstanceRejectsGarbage(t *testing.T) {
	_, err := ParseInstance("order-query", "10.0.0.4")
	assert.Error(t, err)

	_, err = ParseInstance("order-query", "10.0.0.4:http")
	assert.Error(t, err)
}
