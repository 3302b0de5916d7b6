package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/backmassage/mtsmux/internal/config"
	"github.com/backmassage/mtsmux/internal/logging"
	"github.com/backmassage/mtsmux/internal/pipeline"
)

// commandContext carries state shared by every subcommand: the resolved
// config and the logger built from it.
type commandContext struct {
	configFlag string
	overrides  config.Overrides

	cfg *config.Config
	log *logging.Logger
}

// ensureConfig resolves the effective config for cmd:
// defaults, then the TOML file, then flags the user set, then validation.
func (c *commandContext) ensureConfig(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()

	path := strings.TrimSpace(c.configFlag)
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath()
	}
	if err := config.LoadFile(&cfg, path, explicit); err != nil {
		return err
	}

	c.overrides.Apply(cmd.Flags(), &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	c.cfg = &cfg
	c.log = log
	return nil
}

func (c *commandContext) close() {
	if c.log != nil {
		_ = c.log.Close()
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// reportedError marks an error that was already logged with its remedy,
// so main only sets the exit status.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// exitCode maps an error to the process exit status: 130 for an
// interrupted run, 1 otherwise.
func exitCode(err error) int {
	var f *pipeline.Failure
	if errors.As(err, &f) && f.Kind == pipeline.FailureInterrupted {
		return 130
	}
	if errors.Is(err, context.Canceled) {
		return 130
	}
	return 1
}
