package parser

import "strings"

// tokenizedCommand is the tokenizer's output: the service and operation
// tokens plus the remaining flag/positional tokens in their original
// left-to-right order.
type tokenizedCommand struct {
	Service   string
	Operation string
	Arguments []string
}

// tokenize splits a raw command string into tokens, honoring double-quoted
// substrings, and strips the leading CLI invocation token ("aws ...").
//
// Fails with CommandValidationError when quoting is unterminated or the
// command names no service/operation.
func tokenize(raw string) (*tokenizedCommand, error) {
	tokens, err := splitTokens(raw)
	if err != nil {
		return nil, err
	}
	// tokens[0] is the CLI invocation prefix itself.
	if len(tokens) < 3 {
		return nil, &CommandValidationError{
			Message: "command must name a service and an operation",
		}
	}
	return &tokenizedCommand{
		Service:   tokens[1],
		Operation: tokens[2],
		Arguments: tokens[3:],
	}, nil
}

// splitTokens splits on whitespace outside double quotes. Quote characters
// are consumed; the quoted content, including embedded spaces, stays one
// token.
func splitTokens(raw string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inQuote := false
	started := false

	flush := func() {
		if started {
			tokens = append(tokens, cur.String())
			cur.Reset()
			started = false
		}
	}

	for _, r := range raw {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true // an empty quoted string is still a token
		case (r == ' ' || r == '\t' || r == '\n') && !inQuote:
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, &CommandValidationError{
			Message: "unterminated double quote in command",
		}
	}
	flush()
	return tokens, nil
}
