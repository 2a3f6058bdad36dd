// Package orchestrator runs the per-workbook pipeline: pick a sheet, decode
// it, enrich the party identities, and file the results. Inputs that fail
// are quarantined with the reason logged, never dropped silently.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/xl-idp/unzipping/internal/catalog"
	"github.com/xl-idp/unzipping/internal/decode"
	"github.com/xl-idp/unzipping/internal/observability"
)

// ErrNoItems reports a workbook where no sheet produced line items.
var ErrNoItems = errors.New("no line items decoded")

// Enricher fills identity fields into a decoded header. Satisfied by
// identity.Enricher.
type Enricher interface {
	Enrich(ctx context.Context, header map[string]string, sheetText string)
}

// Dirs are the pipeline's output locations.
type Dirs struct {
	JSON   string
	Done   string
	Errors string
}

// Config tunes a Pipeline.
type Config struct {
	Dirs          Dirs
	SeedPositions map[string]int
	// Header detection overrides; zero uses the decoder defaults.
	HeaderCoefficient int
	HeaderMinCells    int
	// Clock is injectable for deterministic parse timestamps in tests.
	Clock func() time.Time
}

// Result summarizes one processed workbook.
type Result struct {
	JobID    string        `json:"job_id"`
	File     string        `json:"file"`
	Sheet    string        `json:"sheet"`
	Items    int           `json:"items"`
	JSONPath string        `json:"json_path"`
	Duration time.Duration `json:"duration"`
}

// Pipeline decodes and enriches workbooks one at a time.
type Pipeline struct {
	cat      *catalog.Catalog
	enricher Enricher
	cfg      Config
	clock    func() time.Time
	stats    *Stats
	log      *observability.Logger
}

// NewPipeline assembles a pipeline. enricher may be nil to decode without
// identity resolution.
func NewPipeline(cat *catalog.Catalog, enricher Enricher, cfg Config, log *observability.Logger) *Pipeline {
	if log == nil {
		log = observability.Nop()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Pipeline{
		cat:      cat,
		enricher: enricher,
		cfg:      cfg,
		clock:    clock,
		stats:    &Stats{},
		log:      log,
	}
}

// Stats exposes the pipeline counters.
func (p *Pipeline) Stats() *Stats {
	return p.stats
}

// ProcessFile runs one workbook end to end. origin is the inbox entry the
// workbook came from, recorded on every item; for workbooks extracted from
// an archive it is the archive's path, not the scratch copy. On success the
// decoded items land as JSON and the source is copied to the done directory;
// on failure the source is quarantined in the errors directory and the error
// returned.
func (p *Pipeline) ProcessFile(ctx context.Context, path, origin string) (*Result, error) {
	started := time.Now()
	jobID := uuid.NewString()
	p.log.Info().Str("job_id", jobID).Str("file", path).Str("origin", origin).Msg("processing workbook")

	rec, sheet, err := p.decodeFile(ctx, path, origin)
	if err != nil {
		p.quarantine(path, jobID, err)
		return nil, err
	}

	jsonPath, err := p.writeResult(path, rec)
	if err != nil {
		p.quarantine(path, jobID, err)
		return nil, err
	}
	if _, err := CopyToDir(path, p.cfg.Dirs.Done); err != nil {
		p.quarantine(path, jobID, err)
		return nil, err
	}

	p.stats.recordSuccess(len(rec.Items))
	res := &Result{
		JobID:    jobID,
		File:     path,
		Sheet:    sheet,
		Items:    len(rec.Items),
		JSONPath: jsonPath,
		Duration: time.Since(started),
	}
	p.log.Info().
		Str("job_id", jobID).
		Str("sheet", sheet).
		Int("items", res.Items).
		Dur("duration", res.Duration).
		Msg("workbook processed")
	return res, nil
}

// decodeFile tries the priority sheet first, then the remaining sheets in
// workbook order; the first sheet that yields line items wins.
func (p *Pipeline) decodeFile(ctx context.Context, path, origin string) (*decode.Record, string, error) {
	wb, err := decode.OpenWorkbook(path)
	if err != nil {
		return nil, "", err
	}
	defer wb.Close()

	names := wb.SheetNames()
	if len(names) == 0 {
		return nil, "", fmt.Errorf("workbook %s has no sheets", path)
	}
	first := wb.ChooseSheet(p.cat.PrioritySheets())
	order := make([]string, 0, len(names))
	order = append(order, first)
	for _, name := range names {
		if name != first {
			order = append(order, name)
		}
	}

	if origin == "" {
		origin = path
	}
	base := map[string]string{
		decode.KeyOriginalFileName: filepath.Base(path),
		decode.KeyParsedOn:         p.clock().Format("2006-01-02 15:04:05"),
		decode.KeyInputData:        origin,
	}
	if cn := decode.ContainerNumber(filepath.Base(path)); cn != "" {
		base[catalog.RoleContainerNumber] = cn
	}

	var lastErr error
	for _, sheet := range order {
		rows, err := wb.Rows(sheet)
		if err != nil {
			lastErr = err
			continue
		}
		dec := decode.NewDecoder(p.cat, p.log, decode.Options{
			BaseHeader:    base,
			SeedPositions: p.cfg.SeedPositions,
			OnHeader: func(header map[string]string, sheetText string) {
				if p.enricher != nil {
					p.enricher.Enrich(ctx, header, sheetText)
				}
			},
			HeaderCoefficient: p.cfg.HeaderCoefficient,
			HeaderMinCells:    p.cfg.HeaderMinCells,
		})
		rec, err := dec.Decode(rows)
		if err != nil {
			lastErr = fmt.Errorf("decode %s sheet %q: %w", path, sheet, err)
			continue
		}
		if len(rec.Items) > 0 {
			return rec, sheet, nil
		}
	}
	if lastErr != nil {
		return nil, "", lastErr
	}
	return nil, "", fmt.Errorf("%s: %w", path, ErrNoItems)
}

// writeResult serializes the line items next to previous runs, reusing the
// path when the source file is unchanged.
func (p *Pipeline) writeResult(path string, rec *decode.Record) (string, error) {
	if err := os.MkdirAll(p.cfg.Dirs.JSON, 0o755); err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	items := rec.Items
	if items == nil {
		items = []map[string]string{}
	}
	jsonPath := UniqueDestination(p.cfg.Dirs.JSON, filepath.Base(path)+".json", info.Size())
	if err := WriteJSON(jsonPath, items); err != nil {
		return "", err
	}
	return jsonPath, nil
}

func (p *Pipeline) quarantine(path, jobID string, cause error) {
	p.stats.recordFailure()
	if _, err := CopyToDir(path, p.cfg.Dirs.Errors); err != nil {
		p.log.Error().Str("job_id", jobID).Str("file", path).Err(err).Msg("quarantine copy failed")
	}
	p.log.Error().Str("job_id", jobID).Str("file", path).Err(cause).Msg("workbook rejected")
}
