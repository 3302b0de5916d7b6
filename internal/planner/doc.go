// Package planner holds the plan catalog: the ordered engine operations
// tried for one source file and the criteria each must meet.
//
//   - Plan, Action (types.go)
//   - BuildPlans, FastRemux, CompatibilityReencode (planner.go)
//   - Deinterlace filter and compatibility ceiling constants (filter.go)
package planner
