// Package processor is the boundary between the command surfaces and the
// merge and formatter packages. Every operation returns an outcome value;
// failures are reported through its Success flag and Message, never as a Go
// error.
package processor

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nconklindev/castmerge/internal/config"
	"github.com/nconklindev/castmerge/internal/types"

	"github.com/google/uuid"
)

var (
	excelExtensions = []string{".xlsx", ".xls"}
	tableExtensions = []string{".xlsx", ".xls", ".csv"}
)

// Outcome is the part every operation result shares.
type Outcome struct {
	RunID    string `json:"run_id"`
	Success  bool   `json:"success"`
	Message  string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

// Processor runs operations with one configuration and logger.
type Processor struct {
	cfg    *config.Config
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Processor {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{cfg: cfg, logger: logger}
}

// Config returns the settings the processor was built with.
func (p *Processor) Config() *config.Config {
	return p.cfg
}

// run tracks a single operation from start to outcome.
type run struct {
	id     string
	start  time.Time
	logger *slog.Logger
}

func (p *Processor) begin(op string, attrs ...any) *run {
	id := uuid.New().String()
	r := &run{
		id:     id,
		start:  time.Now(),
		logger: p.logger.With("op", op, "run_id", id),
	}
	r.logger.Info("starting "+op, attrs...)
	return r
}

func (r *run) succeed(attrs ...any) Outcome {
	elapsed := time.Since(r.start)
	r.logger.Info("completed successfully", append(attrs, "duration", elapsed)...)
	return Outcome{RunID: r.id, Success: true, Duration: elapsed.String()}
}

func (r *run) fail(err error) Outcome {
	elapsed := time.Since(r.start)
	msg := describe(err)

	var vErr *types.ValidationError
	switch {
	case errors.As(err, &vErr), errors.Is(err, types.ErrFileTooLarge), errors.Is(err, types.ErrUnsupportedFile):
		r.logger.Warn("validation failed", "error", msg)
	case errors.Is(err, types.ErrIdentifierNotFound), errors.Is(err, types.ErrMissingColumn),
		errors.Is(err, types.ErrMissingSheet), errors.Is(err, types.ErrNoValidSheets),
		errors.Is(err, types.ErrNoValidData), errors.Is(err, types.ErrEmptyResult):
		r.logger.Warn("processing failed", "error", msg)
	default:
		r.logger.Error("unexpected error during processing", "error", msg)
	}

	return Outcome{RunID: r.id, Success: false, Message: msg, Duration: elapsed.String()}
}

// describe turns err into the message shown to the user.
func describe(err error) string {
	var (
		pathErr *fs.PathError
		vErr    *types.ValidationError
	)
	switch {
	case errors.Is(err, fs.ErrNotExist) && errors.As(err, &pathErr):
		return fmt.Sprintf("File not found: %s", pathErr.Path)
	case errors.As(err, &vErr):
		return vErr.Error()
	case errors.Is(err, types.ErrFileTooLarge), errors.Is(err, types.ErrUnsupportedFile):
		return err.Error()
	case errors.Is(err, types.ErrIdentifierNotFound), errors.Is(err, types.ErrMissingColumn),
		errors.Is(err, types.ErrMissingSheet), errors.Is(err, types.ErrNoValidSheets),
		errors.Is(err, types.ErrNoValidData), errors.Is(err, types.ErrEmptyResult):
		return err.Error()
	default:
		return fmt.Sprintf("Error processing files: %v", err)
	}
}

// checkInput verifies that filePath exists, fits the size limit and carries
// one of the allowed extensions.
func (p *Processor) checkInput(filePath, label string, allowed []string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &types.ValidationError{File: label, Err: fmt.Errorf("%s is a directory", filePath)}
	}

	if limit := p.cfg.MaxFileSize(); info.Size() > limit {
		return fmt.Errorf("%w: %s is %.1fMB, exceeds maximum size of %dMB", types.ErrFileTooLarge,
			filepath.Base(filePath), float64(info.Size())/(1024*1024), p.cfg.App.MaxFileSizeMB)
	}

	if !hasExtension(filePath, allowed) {
		return fmt.Errorf("%w: %s must be %s", types.ErrUnsupportedFile, label, describeExtensions(allowed))
	}
	return nil
}

// checkOutput verifies the output name is an Excel workbook.
func checkOutput(filePath, label string) error {
	if filePath == "" {
		return fmt.Errorf("%s name is empty", label)
	}
	if !hasExtension(filePath, []string{".xlsx"}) {
		return fmt.Errorf("%w: %s must end in .xlsx", types.ErrUnsupportedFile, label)
	}
	return nil
}

func hasExtension(filePath string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

func describeExtensions(allowed []string) string {
	if len(allowed) == len(excelExtensions) {
		return "an Excel file (.xlsx or .xls)"
	}
	return "an Excel or CSV file (.xlsx, .xls or .csv)"
}
