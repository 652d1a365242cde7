// Package selector narrows the extraction root by asking the user to pick
// one subdirectory at a time.
package selector

import (
	"fmt"

	serr "codextract/internal/errors"
	"codextract/internal/fsys"
	"codextract/internal/log"
)

// DefaultCeiling is the number of descents after which selection stops.
const DefaultCeiling = 5

// ThisFolderLabel labels the option that ends selection at the current folder.
const ThisFolderLabel = "Select this folder"

// Option is one labeled choice offered to the user.
type Option struct {
	Label string
	Value string
}

// Chooser asks the user to pick one of options and returns its Value.
type Chooser interface {
	Choose(message string, options []Option) (string, error)
}

// DirectoryPolicy is the part of filter.Policy the selector needs.
type DirectoryPolicy interface {
	SkipDirectory(name string) bool
}

// State is a point in the selection. Depth counts descents taken so far.
type State struct {
	Path  string
	Depth int
	Done  bool
}

// Selector drives the choose/descend loop.
type Selector struct {
	lister  fsys.Lister
	policy  DirectoryPolicy
	chooser Chooser
	ceiling int
}

// New creates a Selector. A ceiling below 1 falls back to DefaultCeiling.
func New(lister fsys.Lister, policy DirectoryPolicy, chooser Chooser, ceiling int) *Selector {
	if ceiling < 1 {
		ceiling = DefaultCeiling
	}
	return &Selector{lister: lister, policy: policy, chooser: chooser, ceiling: ceiling}
}

// Start returns the initial state for startPath.
func Start(startPath string) State {
	return State{Path: startPath}
}

// Options lists the eligible subdirectories of the state's folder in listing
// order, followed by the option selecting the folder itself.
func (s *Selector) Options(state State) ([]Option, error) {
	entries, err := s.lister.ListEntries(state.Path)
	if err != nil {
		return nil, err
	}

	var options []Option
	for _, entry := range entries {
		if entry.Kind != fsys.Directory || s.policy.SkipDirectory(entry.Name) {
			continue
		}
		options = append(options, Option{Label: entry.Name, Value: entry.Path})
	}
	return append(options, Option{Label: ThisFolderLabel, Value: state.Path}), nil
}

// Next applies one answer. Choosing the current folder, or answering once the
// ceiling has been reached, finishes at the current folder.
func (s *Selector) Next(state State, chosen string) State {
	if state.Done {
		return state
	}
	if chosen == state.Path || state.Depth >= s.ceiling {
		return State{Path: state.Path, Depth: state.Depth, Done: true}
	}
	return State{Path: chosen, Depth: state.Depth + 1}
}

// Select runs the selection from startPath until it finishes and returns the
// chosen folder.
func (s *Selector) Select(startPath string) (string, error) {
	state := Start(startPath)

	for !state.Done {
		options, err := s.Options(state)
		if err != nil {
			return "", err
		}

		chosen, err := s.chooser.Choose(fmt.Sprintf("Select a folder (current: %s)", state.Path), options)
		if err != nil {
			return "", err
		}
		if !offered(options, chosen) {
			return "", serr.NewInvalidInputError("selection is not one of the offered folders", nil).
				WithContext("value", chosen).
				WithContext("current", state.Path)
		}

		state = s.Next(state, chosen)
		log.LogWithFields(log.F("path", state.Path), log.F("depth", state.Depth)).Debug("selection step")
	}

	return state.Path, nil
}

func offered(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
