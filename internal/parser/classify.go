package parser

import "github.com/veldt/cloudcmd/internal/schema"

// classification is the operation classifier's verdict.
type classification struct {
	// IsCustomization is true when the operation resolved through the
	// custom-operation registry.
	IsCustomization bool
	// Operation is the resolved schema operation for the generic path,
	// nil for customizations.
	Operation *schema.Operation
}

// classify decides whether (service, operation) is an allow-listed
// customization or a generic schema operation.
//
// Order matters: registry membership always wins over shape-based denial,
// and shape-based denial fires before schema resolution so a denied verb is
// rejected even when it would otherwise look syntactically valid.
func (p *Parser) classify(service, operation string) (*classification, error) {
	if p.registry.IsCustomOperation(service, operation) {
		return &classification{IsCustomization: true}, nil
	}

	if p.registry.IsDeniedShape(operation) {
		return nil, &OperationNotAllowedError{Service: service, Operation: operation}
	}

	if !p.kb.HasService(service) {
		return nil, &InvalidServiceOperationError{Service: service, Operation: operation}
	}
	op, ok := p.kb.LookupOperation(service, operation)
	if !ok {
		return nil, &InvalidServiceOperationError{Service: service, Operation: operation, ServiceKnown: true}
	}
	return &classification{Operation: op}, nil
}
