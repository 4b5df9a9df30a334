package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCommand() *Command {
	p := NewParams()
	p.Set("--paths", NewList(String("./app.zip"), String("s3://bucket/")))
	p.Set("--recursive", Bool(false))
	return NewCommand("s3", "cp", p, "us-east-1", true)
}

func TestMarshalCanonicalDeterministic(t *testing.T) {
	a, err := MarshalCanonical(buildCommand())
	require.NoError(t, err)
	b, err := MarshalCanonical(buildCommand())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMarshalCanonicalShape(t *testing.T) {
	data, err := MarshalCanonical(buildCommand())
	require.NoError(t, err)
	assert.Equal(t,
		`{"is_customization":true,"operation_name":"cp",`+
			`"parameters":{"--paths":["./app.zip","s3://bucket/"],"--recursive":false},`+
			`"region":"us-east-1","service_name":"s3"}`,
		string(data))
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	p := NewParams()
	p.Set("--query", String("a<b&c>d"))
	cmd := NewCommand("s3", "ls", p, "", true)

	data, err := MarshalCanonical(cmd)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a<b&c>d"`)
}

func TestMarshalCanonicalSortsObjectKeys(t *testing.T) {
	p := NewParams()
	p.Set("Code", Object{
		"ZipFile":  Bytes([]byte("zip")),
		"S3Bucket": String("b"),
		"S3Key":    String("k"),
	})
	cmd := NewCommand("lambda", "CreateFunction", p, "", false)

	data, err := MarshalCanonical(cmd)
	require.NoError(t, err)
	assert.Contains(t, string(data),
		`"Code":{"S3Bucket":"b","S3Key":"k","ZipFile":"emlw"}`)
}

func TestHashStableAcrossParses(t *testing.T) {
	h1, err := Hash(buildCommand())
	require.NoError(t, err)
	h2, err := Hash(buildCommand())
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestHashDiffersOnParameterOrder(t *testing.T) {
	p1 := NewParams()
	p1.Set("--a", String("1"))
	p1.Set("--b", String("2"))
	p2 := NewParams()
	p2.Set("--b", String("2"))
	p2.Set("--a", String("1"))

	h1, err := Hash(NewCommand("s3", "ls", p1, "", true))
	require.NoError(t, err)
	h2, err := Hash(NewCommand("s3", "ls", p2, "", true))
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
