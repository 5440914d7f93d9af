package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"prodtrack/internal/config"
	"prodtrack/internal/model"
	"prodtrack/internal/parser"
	"prodtrack/internal/store"
)

// Coordinator drives one specification import: open the workbook, take
// a blacklist snapshot, run the scan and persist the outcome in a single
// transaction. Runs for different files are independent.
type Coordinator struct {
	store *store.Store
	cfg   config.ImportConfig
}

// NewCoordinator creates an import coordinator.
func NewCoordinator(store *store.Store, cfg config.ImportConfig) *Coordinator {
	return &Coordinator{store: store, cfg: cfg}
}

// ImportOptions describe one run. SourceName is the original file name
// the object number is derived from; it defaults to the base of FilePath.
type ImportOptions struct {
	FilePath   string
	SourceName string
}

// ProgressEvent is one entry of the import progress stream.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/info/done/error
	RunID     string      `json:"runId"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Import runs asynchronously and reports progress over the returned
// channel. The channel closes when the run ends; a run that emits an
// "error" event persisted nothing.
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) {
	startTime := time.Now()
	runID := uuid.NewString()

	sourceName := opts.SourceName
	if sourceName == "" {
		sourceName = filepath.Base(opts.FilePath)
	}
	objectNumber := parser.ObjectNumberFromFilename(sourceName)

	var fileSize int64
	if info, err := os.Stat(opts.FilePath); err == nil {
		fileSize = info.Size()
	}
	logID, logErr := c.store.CreateImportLog(runID, sourceName, fileSize)

	fail := func(err error) {
		if logErr == nil {
			_ = c.store.FinishImportLog(logID, objectNumber, "failed", err.Error(), 0, 0)
		}
		c.send(progressChan, ProgressEvent{
			Type:      "error",
			RunID:     runID,
			Message:   err.Error(),
			Timestamp: time.Now(),
		})
	}

	c.send(progressChan, ProgressEvent{
		Type:    "start",
		RunID:   runID,
		Message: fmt.Sprintf("importing specification %q", sourceName),
		Data: map[string]string{
			"filename":     sourceName,
			"objectNumber": objectNumber,
		},
		Timestamp: time.Now(),
	})

	if objectNumber == "" {
		fail(fmt.Errorf("cannot derive object number from file name %q", sourceName))
		return
	}

	file, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		fail(fmt.Errorf("failed to open workbook: %w", err))
		return
	}
	defer file.Close()

	// Blacklist snapshot is taken once; edits made during the scan do
	// not affect this run.
	blacklist, err := c.store.BlacklistSnapshot()
	if err != nil {
		fail(fmt.Errorf("failed to load blacklist: %w", err))
		return
	}

	c.send(progressChan, ProgressEvent{
		Type:      "info",
		RunID:     runID,
		Message:   fmt.Sprintf("scanning sheet %q (%d blacklist patterns)", c.cfg.SheetName, len(blacklist)),
		Timestamp: time.Now(),
	})

	specParser := parser.NewSpecParser(file, parser.Options{
		SheetName:   c.cfg.SheetName,
		StartRow:    c.cfg.StartRow,
		MarkerColor: c.cfg.MarkerColor,
		Blacklist:   blacklist,
	})

	products, err := specParser.Parse()
	if err != nil {
		fail(err)
		return
	}

	outcome := &parser.Outcome{
		ObjectNumber: objectNumber,
		Products:     products,
	}

	objectID, err := c.store.SaveCatalog(outcome)
	if err != nil {
		fail(fmt.Errorf("failed to persist catalog: %w", err))
		return
	}

	partCount := 0
	for _, p := range products {
		partCount += len(p.Parts)
	}

	if logErr == nil {
		_ = c.store.FinishImportLog(logID, objectNumber, "completed", "", len(products), partCount)
	}

	c.send(progressChan, ProgressEvent{
		Type:    "done",
		RunID:   runID,
		Message: fmt.Sprintf("imported object %s: %d products, %d parts", objectNumber, len(products), partCount),
		Data: &model.ImportReport{
			RunID:        runID,
			Filename:     sourceName,
			ObjectNumber: objectNumber,
			ObjectID:     objectID,
			Products:     len(products),
			Parts:        partCount,
			Duration:     time.Since(startTime),
		},
		Timestamp: time.Now(),
	})
}

// send delivers an event without blocking; a full channel drops it.
func (c *Coordinator) send(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}
