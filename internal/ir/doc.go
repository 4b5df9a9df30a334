// Package ir provides the intermediate representation of a parsed cloud-CLI
// command.
//
// This package contains type definitions and serialization only. All other
// internal packages import ir; ir imports nothing internal. This keeps the
// IR the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - No numeric value kinds: CLI scalars stay strings ("3306", not 3306),
//     matching what the downstream API executor expects on the wire.
//   - Parameter order is insertion order and is preserved through
//     serialization, so parsing the same command twice yields byte-identical
//     canonical JSON.
//   - Command is immutable after construction; accessors return copies of
//     anything mutable.
package ir
