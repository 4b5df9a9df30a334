package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureCUE = `
services: demo: operations: {
	CreateWidget: {
		params: {
			WidgetName: {required: true}
			Blob:       {shape: "blob", target: ["Payload", "Data"]}
			DryRun:     {shape: "boolean"}
			Tags:       {shape: "list"}
		}
	}
	ListWidgets: {}
}
`

func TestCompileFixture(t *testing.T) {
	kb, err := loadValue(fixtureCUE)
	require.NoError(t, err)

	require.True(t, kb.HasService("demo"))
	assert.False(t, kb.HasService("nope"))

	op, ok := kb.LookupOperation("demo", "create-widget")
	require.True(t, ok)
	assert.Equal(t, "CreateWidget", op.Name)
	assert.Equal(t, "create-widget", op.Flag)
	require.Len(t, op.Params, 4)

	name, ok := op.ParamByFlag("widget-name")
	require.True(t, ok)
	assert.True(t, name.Required)
	assert.Equal(t, ShapeString, name.Shape)

	blob, ok := op.ParamByFlag("blob")
	require.True(t, ok)
	assert.Equal(t, ShapeBlob, blob.Shape)
	assert.Equal(t, FileModeBinary, blob.FileMode, "blob defaults to binary file mode")
	assert.Equal(t, []string{"Payload", "Data"}, blob.Target)

	assert.Equal(t, []string{"WidgetName"}, op.RequiredParams())
}

func TestCompileRejectsUnknownShape(t *testing.T) {
	_, err := loadValue(`services: demo: operations: Op: params: X: {shape: "float"}`)
	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, `unknown shape "float"`)
}

func TestCompileRejectsUnknownFileMode(t *testing.T) {
	_, err := loadValue(`services: demo: operations: Op: params: X: {file: "stream"}`)
	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, `unknown file mode "stream"`)
}

func TestCompileRejectsMissingOperations(t *testing.T) {
	_, err := loadValue(`services: demo: {}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operations is required")
}

func TestLoadEmbeddedSchemas(t *testing.T) {
	kb, err := Load()
	require.NoError(t, err)

	for _, svc := range []string{"s3", "lambda", "emr", "rds", "cloudformation", "ec2", "iam", "sts"} {
		assert.True(t, kb.HasService(svc), "service %s", svc)
	}

	op, ok := kb.LookupOperation("s3", "list-buckets")
	require.True(t, ok)
	assert.Equal(t, "ListBuckets", op.Name)

	cf, ok := kb.LookupOperation("lambda", "create-function")
	require.True(t, ok)
	assert.Equal(t, "CreateFunction", cf.Name)
	zip, ok := cf.ParamByFlag("zip-file")
	require.True(t, ok)
	assert.Equal(t, []string{"Code", "ZipFile"}, zip.Target)
	assert.Equal(t, FileModeBinary, zip.FileMode)

	cs, ok := kb.LookupOperation("cloudformation", "create-stack")
	require.True(t, ok)
	body, ok := cs.ParamByFlag("template-body")
	require.True(t, ok)
	assert.Equal(t, FileModeText, body.FileMode)
	assert.Equal(t, []string{"StackName"}, cs.RequiredParams())

	// Customizations must not leak into the schema knowledge base.
	_, ok = kb.LookupOperation("s3", "ls")
	assert.False(t, ok)
	_, ok = kb.LookupOperation("emr", "describe-cluster")
	assert.False(t, ok)
}

func TestLookupOperationPascalFallback(t *testing.T) {
	kb, err := loadValue(`services: demo: operations: OddlySpelled: {flag: "odd"}`)
	require.NoError(t, err)

	// Declared alias wins.
	op, ok := kb.LookupOperation("demo", "odd")
	require.True(t, ok)
	assert.Equal(t, "OddlySpelled", op.Name)

	// Derived kebab spelling still resolves through the PascalCase guess.
	op, ok = kb.LookupOperation("demo", "oddly-spelled")
	require.True(t, ok)
	assert.Equal(t, "OddlySpelled", op.Name)
}

func TestServicesAndOperationsEnumeration(t *testing.T) {
	kb, err := loadValue(fixtureCUE)
	require.NoError(t, err)

	assert.Equal(t, []string{"demo"}, kb.Services())
	assert.Equal(t, []string{"create-widget", "list-widgets"}, kb.Operations("demo"))
	assert.Nil(t, kb.Operations("nope"))
}
