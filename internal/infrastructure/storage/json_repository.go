package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ResearchScout/internal/domain"
	"ResearchScout/internal/ports"
)

const (
	SiteAnalysisFile     = "site_analysis.json"
	ExternalResearchFile = "external_research.json"
	SuggestionsFile      = "suggestions.json"
)

// JSONRepository persists run reports as pretty-printed JSON files. Every write
// goes to a temp file in the same directory and is renamed into place, so readers
// never observe a partial file and the last writer wins.
type JSONRepository struct {
	dir       string
	draftsDir string
}

var _ ports.ReportStore = (*JSONRepository)(nil)

// NewJSONRepository stores reports in dir and markdown stubs in draftsDir
// (relative draftsDir is resolved under dir).
func NewJSONRepository(dir, draftsDir string) *JSONRepository {
	if draftsDir == "" {
		draftsDir = "drafts"
	}
	if !filepath.IsAbs(draftsDir) {
		draftsDir = filepath.Join(dir, draftsDir)
	}
	return &JSONRepository{dir: dir, draftsDir: draftsDir}
}

// SaveSiteAnalysis writes site_analysis.json.
func (r *JSONRepository) SaveSiteAnalysis(ctx context.Context, report domain.SiteAnalysis) error {
	return r.writeJSON(ctx, filepath.Join(r.dir, SiteAnalysisFile), report)
}

// LoadSiteAnalysis reads site_analysis.json; a missing file yields nil without error.
func (r *JSONRepository) LoadSiteAnalysis(ctx context.Context) (*domain.SiteAnalysis, error) {
	var report domain.SiteAnalysis
	found, err := r.readJSON(ctx, filepath.Join(r.dir, SiteAnalysisFile), &report)
	if err != nil || !found {
		return nil, err
	}
	return &report, nil
}

// SaveResearch writes external_research.json.
func (r *JSONRepository) SaveResearch(ctx context.Context, report domain.ResearchReport) error {
	return r.writeJSON(ctx, filepath.Join(r.dir, ExternalResearchFile), report)
}

// LoadResearch reads external_research.json; a missing file yields nil without error.
func (r *JSONRepository) LoadResearch(ctx context.Context) (*domain.ResearchReport, error) {
	var report domain.ResearchReport
	found, err := r.readJSON(ctx, filepath.Join(r.dir, ExternalResearchFile), &report)
	if err != nil || !found {
		return nil, err
	}
	return &report, nil
}

// SaveSuggestions writes suggestions.json.
func (r *JSONRepository) SaveSuggestions(ctx context.Context, batch domain.SuggestionBatch) error {
	return r.writeJSON(ctx, filepath.Join(r.dir, SuggestionsFile), batch)
}

// WriteStub writes a markdown stub into the drafts directory and returns its path.
func (r *JSONRepository) WriteStub(ctx context.Context, name string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid stub name %q", name)
	}
	path := filepath.Join(r.draftsDir, name)
	if err := writeAtomic(path, content); err != nil {
		return "", err
	}
	return path, nil
}

func (r *JSONRepository) writeJSON(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	return writeAtomic(path, append(data, '\n'))
}

func (r *JSONRepository) readJSON(ctx context.Context, path string, v any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename into %s: %w", filepath.Base(path), err)
	}
	return nil
}
