package pool

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/wandermatch/matchengine/pkg/types"
)

// surveyFilePrefix and surveyFileExt name the survey intake artifacts:
// user_answer_YYYYMMDD_HHMMSS.csv written by the web layer.
const (
	surveyFilePrefix = "user_answer"
	surveyFileExt    = ".csv"
)

// LatestSurveyFile finds the newest user answer file in dir by modification
// time. Returns the path and the timestamp embedded in the filename (falls
// back to the file's mtime when the name doesn't parse).
func LatestSurveyFile(dir string) (string, time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("read survey dir: %w", err)
	}

	type found struct {
		path string
		mod  time.Time
	}
	var files []found
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, surveyFilePrefix) || !strings.HasSuffix(name, surveyFileExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, found{path: filepath.Join(dir, name), mod: info.ModTime()})
	}
	if len(files) == 0 {
		return "", time.Time{}, fmt.Errorf("no %s*%s files in %s", surveyFilePrefix, surveyFileExt, dir)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].mod.After(files[j].mod) })
	latest := files[0]

	ts := parseFilenameTimestamp(filepath.Base(latest.path))
	if ts.IsZero() {
		ts = latest.mod
	}
	return latest.path, ts, nil
}

// parseFilenameTimestamp extracts the YYYYMMDD_HHMMSS portion of a survey
// filename. Zero time when the name doesn't follow the convention.
func parseFilenameTimestamp(name string) time.Time {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(name, surveyFilePrefix+"_"), surveyFileExt)
	ts, err := time.Parse("20060102_150405", trimmed)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// LoadSurveyResponse reads a single-row survey answer CSV and applies field
// defaults. The row's ID is derived from the filename timestamp so the same
// file always yields the same response identity.
func LoadSurveyResponse(path string, ts time.Time) (*types.SurveyResponse, error) {
	p, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if p.Len() == 0 {
		return nil, fmt.Errorf("survey file %s has no rows", path)
	}

	resp := p.Candidates[0]
	resp.ID = types.NewID(ts)
	resp.ApplyDefaults(ts)
	return &resp, nil
}
