package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wandermatch/matchengine/internal/pool"
	"github.com/wandermatch/matchengine/pkg/types"
)

// Writer persists audit artifacts for each matching run. Persistence is
// best-effort: failures are logged at warn level and never fail the match.
type Writer struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

// New creates a writer rooted at dir.
func New(dir string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{dir: dir, logger: logger, now: time.Now}
}

// runFileName builds a collision-free artifact name: timestamp for humans,
// a uuid fragment so two runs in the same second never clash.
func (w *Writer) runFileName(prefix string) string {
	ts := w.now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s.csv", prefix, ts, uuid.NewString()[:8])
}

// WriteSimilarityMatrix writes the per-question similarity matrix: one row
// per pool candidate, one column per matching question. Returns the file
// path, empty on failure.
func (w *Writer) WriteSimilarityMatrix(p *pool.Pool, matrix [][]float64) string {
	path := filepath.Join(w.dir, w.runFileName("similarity_matrix"))

	header := make([]string, 0, len(types.MatchingFieldNames())+1)
	header = append(header, "")
	for i := range types.MatchingFieldNames() {
		header = append(header, fmt.Sprintf("Q%d", i+1))
	}

	records := [][]string{header}
	for i, row := range matrix {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, fmt.Sprintf("User %d", i+1))
		for _, sim := range row {
			rec = append(rec, strconv.FormatFloat(sim, 'f', 6, 64))
		}
		records = append(records, rec)
	}

	if err := w.writeCSV(path, records); err != nil {
		w.logger.Warn("writing similarity matrix failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	w.logger.Info("similarity matrix saved", zap.String("path", path))
	return path
}

// WriteTopMatches writes the ranked matches with candidate details and the
// blended match score. Returns the file path, empty on failure.
func (w *Writer) WriteTopMatches(p *pool.Pool, result *types.MatchResult) string {
	path := filepath.Join(w.dir, w.runFileName("top_matches"))

	header := append([]string{"candidate_id", "name", "age", "nationality"}, types.MatchingFieldNames()...)
	header = append(header, "match_score")
	records := [][]string{header}

	for _, m := range result.Matches {
		idx := p.IndexOf(m.CandidateID)
		if idx < 0 {
			continue
		}
		c := &p.Candidates[idx]
		rec := append([]string{c.ID, c.Name, c.Age, c.Nationality}, c.MatchingValues()...)
		rec = append(rec, strconv.FormatFloat(m.Score, 'f', 6, 64))
		records = append(records, rec)
	}

	if err := w.writeCSV(path, records); err != nil {
		w.logger.Warn("writing top matches failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	w.logger.Info("top matches saved", zap.String("path", path))
	return path
}

func (w *Writer) writeCSV(path string, records [][]string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("write records: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
