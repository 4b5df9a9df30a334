// Package schema provides the read-only knowledge base of cloud service
// operation schemas the parser resolves generic operations against.
//
// Schemas are authored in CUE files embedded in the binary and compiled once
// at process start via the CUE Go API. The resulting KnowledgeBase is
// immutable and safe to share across concurrent parses.
package schema
