package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/veldt/cloudcmd/internal/ir"
	"github.com/veldt/cloudcmd/internal/schema"
)

// fileScheme is the closed enumeration of reference kinds a parameter value
// may carry. Each value is classified exactly once instead of re-checking
// string prefixes at every use site.
type fileScheme int

const (
	schemeNone  fileScheme = iota // bare value or local path
	schemeFile                    // file:// - text content
	schemeFileb                   // fileb:// - raw bytes
	schemeS3                      // s3:// - remote object reference, passed through
	schemeHTTP                    // http:// or https://
	schemeStdio                   // "-" - the stdin/stdout streaming sentinel
)

// classifyScheme resolves a raw value to its reference kind.
func classifyScheme(value string) fileScheme {
	switch {
	case value == "-":
		return schemeStdio
	case strings.HasPrefix(value, "fileb://"):
		return schemeFileb
	case strings.HasPrefix(value, "file://"):
		return schemeFile
	case strings.HasPrefix(value, "s3://"):
		return schemeS3
	case strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"):
		return schemeHTTP
	default:
		return schemeNone
	}
}

// fileResolver applies the file-reference rules for one parse: sandbox
// enforcement, scheme rejection, and content loading. It is created per
// parse call so concurrent parses stay isolated.
type fileResolver struct {
	ctx       context.Context
	workDir   string // absolute, cleaned sandbox root
	service   string
	operation string
}

// resolvePathArgument handles a positional path of a path-taking
// customization (s3 cp and friends). Local paths are sandboxed but not
// loaded: the downstream executor streams them. Remote object URIs pass
// through untouched.
func (r *fileResolver) resolvePathArgument(value string) (string, error) {
	switch classifyScheme(value) {
	case schemeStdio:
		return "", newStreamingError(r.service, r.operation)
	case schemeS3:
		return value, nil
	case schemeHTTP:
		return "", newSchemeError(value, remoteScheme(value))
	case schemeFileb:
		return r.sandboxed(strings.TrimPrefix(value, "fileb://"))
	case schemeFile:
		return r.sandboxed(strings.TrimPrefix(value, "file://"))
	default:
		if _, err := r.sandboxed(value); err != nil {
			return "", err
		}
		// Keep the user's spelling; only the check needed the absolute form.
		return value, nil
	}
}

// resolveValue handles a generic parameter value according to its declared
// file mode. Parameters with FileModeNone never resolve file references, so
// remote URLs stay legal for them (e.g. a template-url parameter).
func (r *fileResolver) resolveValue(param *schema.Param, value string) (ir.Value, error) {
	if param.FileMode == schema.FileModeNone {
		return ir.String(value), nil
	}

	switch classifyScheme(value) {
	case schemeStdio:
		return nil, newStreamingError(r.service, r.operation)
	case schemeS3:
		return ir.String(value), nil
	case schemeHTTP:
		return nil, newSchemeError(value, remoteScheme(value))
	case schemeFileb:
		data, err := r.load(strings.TrimPrefix(value, "fileb://"))
		if err != nil {
			return nil, err
		}
		return ir.Bytes(data), nil
	case schemeFile:
		data, err := r.load(strings.TrimPrefix(value, "file://"))
		if err != nil {
			return nil, err
		}
		return ir.String(string(data)), nil
	default:
		// A bare value is a local path only for binary (local file style)
		// parameters; text-mode parameters accept inline content.
		if param.FileMode == schema.FileModeBinary {
			data, err := r.load(value)
			if err != nil {
				return nil, err
			}
			return ir.Bytes(data), nil
		}
		return ir.String(value), nil
	}
}

// sandboxed normalizes a local path against the working directory and
// rejects anything that escapes it. Returns the absolute path.
func (r *fileResolver) sandboxed(path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(r.workDir, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(r.workDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", newSandboxError(path, r.workDir)
	}
	return abs, nil
}

// load sandbox-checks a path and reads its content. I/O failures surface as
// FileParameterError, never as raw os errors.
func (r *fileResolver) load(path string) ([]byte, error) {
	abs, err := r.sandboxed(path)
	if err != nil {
		return nil, err
	}
	if err := r.ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &FileParameterError{
			Service:   r.service,
			Operation: r.operation,
			FilePath:  path,
			Reason:    fmt.Sprintf("unable to read file: %v", err),
		}
	}
	return data, nil
}

func remoteScheme(value string) string {
	if strings.HasPrefix(value, "https://") {
		return "https"
	}
	return "http"
}
