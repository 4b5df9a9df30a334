package parser

// boolFlag declares a boolean flag a customization understands. Declared
// flags shape to true when present and materialize with their default when
// absent, so the parameter map always carries them.
type boolFlag struct {
	Name    string
	Default bool
}

// recipe is the per-(service, operation) shaping rule for a customization.
// The zero value allows value flags only: no positionals, no booleans, no
// required flags.
type recipe struct {
	// PositionalParam is the parameter the positionals fold into
	// (e.g. "--paths"). Empty means positionals are rejected.
	PositionalParam string
	// PositionalDefault is the scalar used when no positionals are given.
	// Empty means no default: the parameter stays absent.
	PositionalDefault string
	// PositionalRequired marks the folded parameter as required.
	PositionalRequired bool
	// FilePositionals subjects each positional to file-reference checks:
	// streaming sentinel, remote schemes, and the working-directory sandbox.
	FilePositionals bool
	// BoolFlags lists the declared boolean flags in materialization order.
	BoolFlags []boolFlag
	// RequiredFlags lists value flags (without dashes) that must be present.
	RequiredFlags []string
}

type recipeKey struct {
	Service   string
	Operation string
}

// recipeTable resolves the shaping recipe for a customization.
type recipeTable map[recipeKey]recipe

// defaultRecipe covers customizations with no specialized rule, including
// the wildcard utility verbs: flags map verbatim and positionals fold into
// --args.
var defaultRecipe = recipe{PositionalParam: "--args"}

// lookup returns the recipe for (service, operation), falling back to the
// default recipe.
func (t recipeTable) lookup(service, operation string) recipe {
	if r, ok := t[recipeKey{service, operation}]; ok {
		return r
	}
	return defaultRecipe
}

// defaultRecipes builds the built-in recipe table. The table is constructed
// once per Parser and never mutated afterwards.
func defaultRecipes() recipeTable {
	return recipeTable{
		{"s3", "ls"}: {
			PositionalParam:   "--paths",
			PositionalDefault: "s3://",
			BoolFlags: []boolFlag{
				{Name: "dir-op"},
				{Name: "human-readable"},
				{Name: "summarize"},
			},
		},
		{"s3", "cp"}: {
			PositionalParam:    "--paths",
			PositionalRequired: true,
			FilePositionals:    true,
			BoolFlags: []boolFlag{
				{Name: "recursive"},
				{Name: "dryrun"},
				{Name: "quiet"},
			},
		},
		{"s3", "mv"}: {
			PositionalParam:    "--paths",
			PositionalRequired: true,
			FilePositionals:    true,
			BoolFlags: []boolFlag{
				{Name: "recursive"},
				{Name: "dryrun"},
				{Name: "quiet"},
			},
		},
		{"s3", "sync"}: {
			PositionalParam:    "--paths",
			PositionalRequired: true,
			FilePositionals:    true,
			BoolFlags: []boolFlag{
				{Name: "delete"},
				{Name: "dryrun"},
				{Name: "quiet"},
			},
		},
		{"s3", "rm"}: {
			PositionalParam:    "--paths",
			PositionalRequired: true,
			BoolFlags: []boolFlag{
				{Name: "recursive"},
				{Name: "dryrun"},
				{Name: "quiet"},
			},
		},
		{"s3", "mb"}: {
			PositionalParam:    "--paths",
			PositionalRequired: true,
		},
		{"s3", "rb"}: {
			PositionalParam:    "--paths",
			PositionalRequired: true,
			BoolFlags:          []boolFlag{{Name: "force"}},
		},
		{"s3", "presign"}: {
			PositionalParam:    "--paths",
			PositionalRequired: true,
		},
		{"s3", "website"}: {
			PositionalParam:    "--paths",
			PositionalRequired: true,
		},
		{"emr", "describe-cluster"}: {
			RequiredFlags: []string{"cluster-id"},
		},
		{"emr", "add-steps"}: {
			RequiredFlags: []string{"cluster-id", "steps"},
		},
		// create-default-roles takes no positionals and no required flags:
		// an empty invocation shapes to an empty parameter map.
		{"emr", "create-default-roles"}: {},
		{"rds", "generate-db-auth-token"}: {
			RequiredFlags: []string{"hostname", "port", "username"},
		},
	}
}
