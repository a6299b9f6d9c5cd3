package pool

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/wandermatch/matchengine/pkg/types"
)

// SourceBuiltin marks a pool substituted from the built-in default set.
const SourceBuiltin = "builtin"

// Pool is an ordered, read-only collection of candidate survey responses.
// Order matters: ranking ties break by insertion order, and cached vectors
// map back to candidates by index.
type Pool struct {
	Candidates []types.SurveyResponse
	Source     string // file path, or SourceBuiltin
}

// Len returns the candidate count.
func (p *Pool) Len() int {
	return len(p.Candidates)
}

// Fingerprint computes a deterministic SHA-256 over the pool's full
// serialized content: every candidate's ID and every cell, display metadata
// included, in row then column order. Any single-character change anywhere
// changes the hash.
func (p *Pool) Fingerprint() string {
	h := sha256.New()
	for _, name := range types.AllFieldNames() {
		h.Write([]byte(name))
		h.Write([]byte{0x1f})
	}
	h.Write([]byte{0x1e})
	for i := range p.Candidates {
		c := &p.Candidates[i]
		h.Write([]byte(c.ID))
		h.Write([]byte{0x1f})
		for _, v := range c.AllValues() {
			h.Write([]byte(v))
			h.Write([]byte{0x1f})
		}
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// LoadFile reads a candidate pool from a CSV file. Rows are candidates,
// columns carry the survey attribute names plus candidate_id. A missing
// candidate_id column gets positional IDs so ranking stays stable.
func LoadFile(path string) (*Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pool file: %w", err)
	}
	defer func() { _ = f.Close() }()

	p, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read pool file %s: %w", path, err)
	}
	p.Source = path
	return p, nil
}

// Read parses pool CSV data from a reader.
func Read(r io.Reader) (*Pool, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return &Pool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	p := &Pool{}
	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}
		row++

		cand, err := decodeRow(header, record)
		if err != nil {
			return nil, fmt.Errorf("decode row %d: %w", row, err)
		}
		if cand.ID == "" {
			cand.ID = fmt.Sprintf("user_%d", row)
		}
		p.Candidates = append(p.Candidates, cand)
	}
	return p, nil
}

// decodeRow maps a CSV record onto a SurveyResponse using the response's
// mapstructure tags, so the CSV column set and the struct schema stay in
// one place.
func decodeRow(header, record []string) (types.SurveyResponse, error) {
	raw := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(record) {
			raw[col] = strings.TrimSpace(record[i])
		}
	}
	// Legacy pool exports used real_name and age_group headers.
	if v, ok := raw["real_name"]; ok && raw["name"] == "" {
		raw["name"] = v
	}
	if v, ok := raw["age_group"]; ok && raw["age"] == "" {
		raw["age"] = v
	}

	var cand types.SurveyResponse
	if err := mapstructure.Decode(raw, &cand); err != nil {
		return cand, err
	}
	return cand, nil
}

// IndexOf returns the insertion index for a candidate ID, or -1.
func (p *Pool) IndexOf(id string) int {
	for i := range p.Candidates {
		if p.Candidates[i].ID == id {
			return i
		}
	}
	return -1
}
