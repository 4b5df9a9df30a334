package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsInsertionOrder(t *testing.T) {
	p := NewParams()
	p.Set("--paths", String("s3://bucket"))
	p.Set("--dir-op", Bool(false))
	p.Set("--human-readable", Bool(true))

	assert.Equal(t, []string{"--paths", "--dir-op", "--human-readable"}, p.Keys())
}

func TestParamsSetExistingKeepsPosition(t *testing.T) {
	p := NewParams()
	p.Set("a", String("1"))
	p.Set("b", String("2"))
	p.Set("a", String("3"))

	assert.Equal(t, []string{"a", "b"}, p.Keys())
	v, ok := p.Get("a")
	require.True(t, ok)
	assert.Equal(t, String("3"), v)
}

func TestParamsDelete(t *testing.T) {
	p := NewParams()
	p.Set("a", String("1"))
	p.Set("b", String("2"))
	p.Set("c", String("3"))

	p.Delete("b")
	assert.Equal(t, []string{"a", "c"}, p.Keys())
	assert.False(t, p.Has("b"))

	// Deleting a missing key is a no-op.
	p.Delete("b")
	assert.Equal(t, 2, p.Len())
}

func TestParamsCloneIsIndependent(t *testing.T) {
	p := NewParams()
	p.Set("a", String("1"))

	c := p.Clone()
	c.Set("b", String("2"))

	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 2, c.Len())
}

func TestParamsMarshalJSONPreservesOrder(t *testing.T) {
	p := NewParams()
	p.Set("zeta", String("1"))
	p.Set("alpha", Bool(true))
	p.Set("mid", NewList(String("x"), String("y")))

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"1","alpha":true,"mid":["x","y"]}`, string(data))
}

func TestBytesMarshalJSONBase64(t *testing.T) {
	data, err := json.Marshal(Bytes([]byte{0x00, 0x01, 0xff}))
	require.NoError(t, err)
	assert.Equal(t, `"AAH/"`, string(data))
}
