package parser

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt/cloudcmd/internal/ir"
)

func TestParseRegionPropagatedVerbatim(t *testing.T) {
	p := newTestParser(t, WithWorkDir(t.TempDir()))

	cmd := mustParse(t, p, "aws s3 ls --region eu-central-1")
	assert.Equal(t, "eu-central-1", cmd.Region())
	// The region rides on the command, not in the parameter map.
	assert.False(t, cmd.Parameters().Has("--region"))
}

func TestParseNoRegionMeansEmpty(t *testing.T) {
	p := newTestParser(t, WithWorkDir(t.TempDir()))

	cmd := mustParse(t, p, "aws s3 ls")
	assert.Equal(t, "", cmd.Region())
}

func TestParseDefaultRegionFillsGap(t *testing.T) {
	p := newTestParser(t, WithWorkDir(t.TempDir()), WithDefaultRegion("us-west-2"))

	cmd := mustParse(t, p, "aws s3 ls")
	assert.Equal(t, "us-west-2", cmd.Region())

	// An explicit flag still wins over the configured default.
	cmd = mustParse(t, p, "aws s3 ls --region ap-southeast-2")
	assert.Equal(t, "ap-southeast-2", cmd.Region())
}

func TestParseRegionRequiresValue(t *testing.T) {
	p := newTestParser(t, WithWorkDir(t.TempDir()))

	_, err := p.Parse(context.Background(), "aws s3 ls --region")
	require.Error(t, err)
	assert.True(t, IsCommandValidation(err))
}

func TestParseIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fn.zip", []byte("zipdata"))
	p := newTestParser(t, WithWorkDir(dir))

	commands := []string{
		"aws s3 ls s3://my-bucket --human-readable",
		"aws s3 cp ./fn.zip s3://bucket/",
		"aws emr describe-cluster --cluster-id j-1234567890",
		"aws lambda create-function --function-name f --role r --zip-file fileb://fn.zip",
	}
	for _, raw := range commands {
		first := mustParse(t, p, raw)
		second := mustParse(t, p, raw)

		h1, err := ir.Hash(first)
		require.NoError(t, err)
		h2, err := ir.Hash(second)
		require.NoError(t, err)
		assert.Equal(t, h1, h2, "command %q", raw)
	}
}

func TestParseConcurrentUse(t *testing.T) {
	p := newTestParser(t, WithWorkDir(t.TempDir()))

	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			_, err := p.Parse(context.Background(), "aws s3 ls s3://bucket --summarize")
			done <- err
		}()
	}
	for i := 0; i < 16; i++ {
		require.NoError(t, <-done)
	}
}

func TestParseCanceledContextStopsFileReads(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fn.zip", []byte("zipdata"))
	p := newTestParser(t, WithWorkDir(dir))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Parse(ctx,
		"aws lambda create-function --function-name f --role r --zip-file fileb://fn.zip")
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseGolden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fn.zip", []byte("zipdata"))
	p := newTestParser(t, WithWorkDir(dir))

	cases := []struct {
		name string
		raw  string
	}{
		{
			name: "s3-ls",
			raw:  "aws s3 ls s3://my-bucket --human-readable --summarize --region eu-west-1",
		},
		{
			name: "emr-describe-cluster",
			raw:  "aws emr describe-cluster --cluster-id j-1234567890",
		},
		{
			name: "lambda-create-function",
			raw: "aws lambda create-function --function-name demo " +
				"--role arn:aws:iam::123456789012:role/demo --runtime go1.x " +
				"--handler main --zip-file fileb://fn.zip",
		},
	}

	g := goldie.New(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := mustParse(t, p, tc.raw)
			data, err := ir.MarshalCanonical(cmd)
			require.NoError(t, err)
			g.Assert(t, tc.name, data)
		})
	}
}
