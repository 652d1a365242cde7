// Package session orchestrates one extraction run: pick a mode, optionally
// narrow the root, walk, and write the artifact.
package session

import (
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"codextract/internal/artifact"
	"codextract/internal/config"
	serr "codextract/internal/errors"
	"codextract/internal/filter"
	"codextract/internal/fsys"
	"codextract/internal/log"
	"codextract/internal/selector"
	"codextract/internal/walk"
)

// Mode values returned by the mode prompt.
const (
	ModeAll    = "all"
	ModeFolder = "folder"
)

// Prompter asks the run's questions.
type Prompter interface {
	selector.Chooser
	AskInt(message string, def int) (int, error)
}

// Controller runs extractions rooted at a base directory. The artifact is
// written into base and its paths are relative to base.
type Controller struct {
	cfg      *config.Config
	fs       fsys.FileSystem
	prompter Prompter
	policy   *filter.Policy
	base     string
}

// New creates a Controller. base is made absolute.
func New(cfg *config.Config, fs fsys.FileSystem, prompter Prompter, base string) (*Controller, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, serr.NewFileError("invalid base directory", base, serr.InvalidPath, err)
	}

	policy, err := filter.New(cfg.Filter)
	if err != nil {
		return nil, err
	}

	return &Controller{cfg: cfg, fs: fs, prompter: prompter, policy: policy, base: abs}, nil
}

// Target returns the absolute artifact path.
func (c *Controller) Target() string {
	return filepath.Join(c.base, c.cfg.Output.FileName)
}

// Run asks for the mode and performs the extraction, returning the artifact path.
func (c *Controller) Run() (string, error) {
	logger := log.LogWithFields(log.F("run", uuid.NewString()), log.F("base", c.base))

	mode, err := c.prompter.Choose("What would you like to extract?", []selector.Option{
		{Label: "Extract the whole project", Value: ModeAll},
		{Label: "Extract a specific folder", Value: ModeFolder},
	})
	if err != nil {
		return "", err
	}

	root := c.base
	maxDepth := walk.Unbounded

	switch mode {
	case ModeAll:
	case ModeFolder:
		sel := selector.New(c.fs, c.policy, c.prompter, c.cfg.Selection.MaxDepth)
		root, err = sel.Select(c.base)
		if err != nil {
			return "", err
		}
		maxDepth, err = c.prompter.AskInt("How many levels deep should the extraction go?", c.cfg.Selection.DefaultWalkDepth)
		if err != nil {
			return "", err
		}
	default:
		return "", serr.NewInvalidInputError("unknown extraction mode", nil).WithContext("mode", mode)
	}

	logger = logger.With(log.F("mode", mode), log.F("root", root), log.F("depth", depthField(maxDepth)))
	logger.Info("extraction started")

	summary, err := c.Extract(root, maxDepth)
	if err != nil {
		logger.WithError(err).Error("extraction failed")
		return "", err
	}

	logger.With(
		log.F("files", summary.Files),
		log.F("size", humanize.Bytes(uint64(summary.Bytes))),
		log.F("artifact", summary.Path),
	).Info("artifact written")

	return summary.Path, nil
}

// Extract truncates the artifact, walks root down to maxDepth and writes
// the collected files. A failed walk leaves the artifact empty.
func (c *Controller) Extract(root string, maxDepth int) (artifact.Summary, error) {
	w := artifact.NewWriter(c.fs, c.base, c.Target(), artifact.FormatFromConfig(c.cfg.Output))
	if err := w.Reset(); err != nil {
		return artifact.Summary{Path: c.Target()}, err
	}

	files, err := walk.New(c.fs, c.policy).Walk(root, 0, maxDepth)
	if err != nil {
		return artifact.Summary{Path: c.Target()}, serr.Wrapf(err, "extracting %s", root)
	}

	return w.Append(files)
}

func depthField(depth int) interface{} {
	if depth == walk.Unbounded {
		return "unbounded"
	}
	return depth
}
