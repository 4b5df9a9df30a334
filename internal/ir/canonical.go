package ir

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces canonical JSON for a Command, suitable for
// hashing and byte-level comparison. Two structurally identical commands
// always serialize to identical bytes.
//
// Differences from standard json.Marshal:
//  1. Object keys sorted by UTF-16 code units, top-level parameters kept in
//     insertion order (order is part of the IR contract)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
func MarshalCanonical(c *Command) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"is_customization":`)
	if c.isCustomization {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}
	buf.WriteString(`,"operation_name":`)
	writeCanonicalString(&buf, c.operationName)
	buf.WriteString(`,"parameters":`)
	if err := writeCanonicalParams(&buf, c.parameters); err != nil {
		return nil, err
	}
	if c.region != "" {
		buf.WriteString(`,"region":`)
		writeCanonicalString(&buf, c.region)
	}
	buf.WriteString(`,"service_name":`)
	writeCanonicalString(&buf, c.serviceName)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Hash returns the hex-encoded SHA-256 of the command's canonical JSON, the
// command's content address.
func Hash(c *Command) (string, error) {
	data, err := MarshalCanonical(c)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func writeCanonicalValue(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case String:
		writeCanonicalString(buf, string(val))
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Bytes:
		writeCanonicalString(buf, base64.StdEncoding.EncodeToString(val))
	case List:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonicalValue(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sortUTF16(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonicalString(buf, k)
			buf.WriteByte(':')
			if err := writeCanonicalValue(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported value type %T in canonical JSON", v)
	}
	return nil
}

func writeCanonicalParams(buf *bytes.Buffer, p *Params) error {
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeCanonicalString(buf, k)
		buf.WriteByte(':')
		if err := writeCanonicalValue(buf, p.values[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeCanonicalString writes an NFC-normalized JSON string without HTML
// escaping.
func writeCanonicalString(buf *bytes.Buffer, s string) {
	normalized := norm.NFC.String(s)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encode appends a newline; trim it.
	_ = enc.Encode(normalized)
	buf.Truncate(buf.Len() - 1)
}

// sortUTF16 sorts strings by their UTF-16 code unit sequence, the key order
// RFC 8785 requires.
func sortUTF16(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a := utf16.Encode([]rune(keys[i]))
		b := utf16.Encode([]rune(keys[j]))
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
}
