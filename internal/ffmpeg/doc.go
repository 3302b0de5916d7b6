// Package ffmpeg is the engine backend that drives the ffmpeg CLI.
//
// A Backend owns a locked work directory. For each operation it
// materializes the scratch entries named in the argument list as files,
// runs ffmpeg with a machine-readable progress stream on stdout, and reads
// the output file back into scratch.
//
//   - Backend, Load, Run, Close (executor.go)
//   - BuildArgs: shared preamble plus scratch-name mapping (builder.go)
//   - Workspace: work directory and its lock (workspace.go)
//   - progress key=value parsing (progress.go)
//   - ExecError and stderr classification (errors.go)
package ffmpeg
