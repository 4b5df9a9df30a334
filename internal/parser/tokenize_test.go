package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBasic(t *testing.T) {
	tok, err := tokenize("aws s3 ls s3://my-bucket --human-readable")
	require.NoError(t, err)
	assert.Equal(t, "s3", tok.Service)
	assert.Equal(t, "ls", tok.Operation)
	assert.Equal(t, []string{"s3://my-bucket", "--human-readable"}, tok.Arguments)
}

func TestTokenizeQuotedValue(t *testing.T) {
	tok, err := tokenize(`aws iam create-user --user-name "Jane Doe" --path /staff/`)
	require.NoError(t, err)
	assert.Equal(t, []string{"--user-name", "Jane Doe", "--path", "/staff/"}, tok.Arguments)
}

func TestTokenizeQuoteInsideToken(t *testing.T) {
	tok, err := tokenize(`aws s3 cp "my file.txt" s3://bucket/`)
	require.NoError(t, err)
	assert.Equal(t, []string{"my file.txt", "s3://bucket/"}, tok.Arguments)
}

func TestTokenizeEmptyQuotedToken(t *testing.T) {
	tok, err := tokenize(`aws iam create-user --user-name ""`)
	require.NoError(t, err)
	assert.Equal(t, []string{"--user-name", ""}, tok.Arguments)
}

func TestTokenizeCollapsesWhitespace(t *testing.T) {
	tok, err := tokenize("aws   s3   ls\t\ts3://bucket")
	require.NoError(t, err)
	assert.Equal(t, "s3", tok.Service)
	assert.Equal(t, "ls", tok.Operation)
	assert.Equal(t, []string{"s3://bucket"}, tok.Arguments)
}

func TestTokenizeUnterminatedQuote(t *testing.T) {
	_, err := tokenize(`aws s3 cp "unterminated s3://bucket/`)
	require.Error(t, err)
	assert.True(t, IsCommandValidation(err))
	assert.Contains(t, err.Error(), "unterminated double quote")
}

func TestTokenizeTooFewTokens(t *testing.T) {
	for _, raw := range []string{"", "aws", "aws s3"} {
		_, err := tokenize(raw)
		require.Error(t, err, "input %q", raw)
		assert.True(t, IsCommandValidation(err), "input %q", raw)
	}
}
