package ir

import "encoding/json"

// Command is the validated output of parsing: canonical service and
// operation names, the fully shaped and resolved parameter map, an optional
// explicit region, and whether the operation resolved through the
// customization path.
//
// Command is immutable: construct with NewCommand, read through accessors.
type Command struct {
	serviceName     string
	operationName   string
	parameters      *Params
	region          string
	isCustomization bool
}

// NewCommand constructs a Command. The params map is cloned so later
// mutation by the caller cannot reach into the command.
func NewCommand(service, operation string, params *Params, region string, isCustomization bool) *Command {
	if params == nil {
		params = NewParams()
	}
	return &Command{
		serviceName:     service,
		operationName:   operation,
		parameters:      params.Clone(),
		region:          region,
		isCustomization: isCustomization,
	}
}

// ServiceName returns the canonical service identifier (e.g. "s3").
func (c *Command) ServiceName() string { return c.serviceName }

// OperationName returns the canonical operation identifier. For
// customizations this is the customization's own name (e.g. "cp"); for
// generic operations it is the schema's canonical name (e.g.
// "CreateFunction").
func (c *Command) OperationName() string { return c.operationName }

// Parameters returns a copy of the shaped parameter map.
func (c *Command) Parameters() *Params { return c.parameters.Clone() }

// Region returns the explicit region override, or "" when none was given.
func (c *Command) Region() string { return c.region }

// IsCustomization reports whether the operation resolved via the custom
// operation registry rather than the generic schema path.
func (c *Command) IsCustomization() bool { return c.isCustomization }

// commandJSON is the serialized shape of a Command.
type commandJSON struct {
	ServiceName     string  `json:"service_name"`
	OperationName   string  `json:"operation_name"`
	Parameters      *Params `json:"parameters"`
	Region          string  `json:"region,omitempty"`
	IsCustomization bool    `json:"is_customization"`
}

// MarshalJSON implements json.Marshaler with snake_case field names.
func (c *Command) MarshalJSON() ([]byte, error) {
	return json.Marshal(commandJSON{
		ServiceName:     c.serviceName,
		OperationName:   c.operationName,
		Parameters:      c.parameters,
		Region:          c.region,
		IsCustomization: c.isCustomization,
	})
}
