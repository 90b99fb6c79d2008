// Package core defines the shared language of the farsql system.
//
// This package contains:
//   - Logical scalar types and the Schema container
//   - The error taxonomy shared by drivers and the client
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
