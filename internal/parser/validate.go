package parser

import (
	"github.com/veldt/cloudcmd/internal/ir"
	"github.com/veldt/cloudcmd/internal/schema"
)

// validateCustom checks a customization's shaped parameters against its
// recipe. All missing names are reported in a single error, using the CLI
// flag spelling.
func validateCustom(service, operation string, rec recipe, params *ir.Params) error {
	var missing []string

	if rec.PositionalRequired && !params.Has(rec.PositionalParam) {
		missing = append(missing, rec.PositionalParam)
	}
	for _, flag := range rec.RequiredFlags {
		if !params.Has("--" + flag) {
			missing = append(missing, "--"+flag)
		}
	}

	if len(missing) > 0 {
		return &MissingRequiredParametersError{
			Service:   service,
			Operation: operation,
			Missing:   missing,
		}
	}
	return nil
}

// validateGeneric checks the schema's required parameters against the set
// satisfied during shaping. Missing names use the schema's declared
// spelling.
func validateGeneric(service string, op *schema.Operation, satisfied map[string]bool) error {
	var missing []string
	for _, name := range op.RequiredParams() {
		if !satisfied[name] {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return &MissingRequiredParametersError{
			Service:   service,
			Operation: op.Name,
			Missing:   missing,
		}
	}
	return nil
}
