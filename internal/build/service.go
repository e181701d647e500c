// Package build bundles entry points with esbuild, inlining raw assets on the way.
// CLI build and watch commands both route through BuildService.
package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/rawassets/internal/config"
)

// BuildService executes bundle builds.
type BuildService interface {
	// Run bundles the configured entry points and returns the outcome.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	// Config is the loaded configuration for this build.
	Config *config.Config

	// WorkingDir resolves relative entry points and outdir. Empty means the
	// process working directory.
	WorkingDir string

	// DryRun bundles without writing output files.
	DryRun bool
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	// ID uniquely identifies this build in logs.
	ID string

	Status BuildStatus

	// OutputFiles lists the paths esbuild produced (written unless DryRun).
	OutputFiles []string

	// Contents holds the produced file contents keyed by path when DryRun is set.
	Contents map[string][]byte

	// Warnings are esbuild warnings rendered as text.
	Warnings []string

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	BuildStatusSuccess   BuildStatus = "success"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess
}
