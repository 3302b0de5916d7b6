// Package pipeline turns one loaded source file into one Outcome by running
// the plan catalog against the engine in declaration order, falling back on
// failure.
//
//   - Orchestrator, Transcode, LastOutput (runner.go)
//   - Outcome, Result, Failure, Attempt (outcome.go)
//   - progress mapping with a trailing reserve (progress.go)
//   - RunStats (stats.go)
package pipeline
