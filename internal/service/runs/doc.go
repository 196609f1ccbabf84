// Package runs drives one agent run end to end.
//
// A run is identified before anything is executed, renders its plan, runs the
// agent inside a private workspace and classifies the outcome:
//   - launched and exited 0 -> success
//   - launched and exited non-zero or killed at the deadline -> error with streams
//   - not launched -> error with message
//
// Auditing and archival are side effects: their failures are logged and never
// alter the returned result.
package runs
