// Package report drives version resolution across a collection and
// renders the results.
//
// Each package resolves to an Outcome value: failures are captured per
// package instead of aborting the batch, so one unreachable host does
// not block the report for the rest of the collection.
package report

import (
	"errors"

	"github.com/carlwgeorge/toleo/internal/aur"
	"github.com/carlwgeorge/toleo/internal/upstream"
)

// Mode selects which sides of each package a report resolves.
type Mode int

const (
	// ModeUpstream resolves and prints upstream versions only
	ModeUpstream Mode = iota
	// ModeRepo resolves and prints repo versions only
	ModeRepo
	// ModeCompare resolves and prints both for human comparison
	ModeCompare
)

// Status classifies a single resolution.
type Status int

const (
	// StatusOK means a version was resolved
	StatusOK Status = iota
	// StatusNotFound means the source was queried but held no version
	StatusNotFound
	// StatusNotConfigured means the package has no definition for this side
	StatusNotConfigured
	// StatusFailed means resolution failed (network, parse)
	StatusFailed
)

// Result is the outcome of resolving one side of a package.
type Result struct {
	Status  Status
	Version string
	Reason  string
}

// Failed reports whether this result is a hard failure.
func (r Result) Failed() bool {
	return r.Status == StatusFailed
}

// Outcome collects the per-side results for one package.
type Outcome struct {
	Package  string
	Upstream Result
	Repo     Result
}

// resultFromUpstream maps an upstream resolution to a Result.
func resultFromUpstream(version string, err error) Result {
	switch {
	case err == nil:
		return Result{Status: StatusOK, Version: version}
	case errors.Is(err, upstream.ErrNotConfigured):
		return Result{Status: StatusNotConfigured}
	case errors.Is(err, upstream.ErrNoVersionFound):
		return Result{Status: StatusNotFound}
	default:
		return Result{Status: StatusFailed, Reason: err.Error()}
	}
}

// resultFromRepo maps an AUR query to a Result.
func resultFromRepo(version string, err error) Result {
	switch {
	case err == nil:
		return Result{Status: StatusOK, Version: version}
	case errors.Is(err, aur.ErrPackageNotFound):
		return Result{Status: StatusNotFound}
	default:
		return Result{Status: StatusFailed, Reason: err.Error()}
	}
}

// CountFailed returns the number of outcomes carrying at least one
// hard failure.
func CountFailed(outcomes []Outcome) int {
	count := 0
	for _, o := range outcomes {
		if o.Upstream.Failed() || o.Repo.Failed() {
			count++
		}
	}
	return count
}
