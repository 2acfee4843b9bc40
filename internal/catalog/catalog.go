package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/liu-tentor/exam-archive-api/internal/search"
	"github.com/liu-tentor/exam-archive-api/pkg/config"
)

const indexCacheKey = "course_codes"

// Loader provides the course-code index, refreshed at most once per
// configured interval. A failed load degrades to an empty index instead
// of surfacing an error, so search endpoints stay up when the catalog
// source is unreachable.
type Loader struct {
	cfg        config.CatalogConfig
	httpClient *http.Client
	store      *gocache.Cache
	logger     *zap.Logger

	mu sync.Mutex
}

func NewLoader(cfg config.CatalogConfig, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      gocache.New(cfg.RefreshInterval, cfg.RefreshInterval),
		logger:     logger,
	}
}

// Index returns the current course-code index, loading it when the
// cached copy has expired. Failed loads are not cached, so the next
// call retries the source.
func (l *Loader) Index(ctx context.Context) *search.Index {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.store.Get(indexCacheKey); ok {
		return cached.(*search.Index)
	}

	codes, err := l.load(ctx)
	if err != nil {
		l.logger.Warn("course catalog load failed, serving empty index", zap.Error(err))
		return search.NewIndex(nil)
	}

	idx := search.NewIndex(codes)
	l.store.Set(indexCacheKey, idx, gocache.DefaultExpiration)
	l.logger.Info("course catalog loaded", zap.Int("codes", idx.Len()))
	return idx
}

// Refresh forces a reload regardless of cache state. Used by the
// background refresh job.
func (l *Loader) Refresh(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	codes, err := l.load(ctx)
	if err != nil {
		return err
	}
	l.store.Set(indexCacheKey, search.NewIndex(codes), gocache.DefaultExpiration)
	return nil
}

func (l *Loader) load(ctx context.Context) ([]string, error) {
	if l.cfg.URL != "" {
		return l.loadFromURL(ctx)
	}
	if l.cfg.FilePath != "" {
		return l.loadFromFile()
	}
	return nil, fmt.Errorf("no catalog source configured")
}

func (l *Loader) loadFromURL(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}
	return decodeCodes(body)
}

func (l *Loader) loadFromFile() ([]string, error) {
	body, err := os.ReadFile(l.cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return decodeCodes(body)
}

// decodeCodes accepts either a bare array of codes or an array of
// objects carrying a course_code field.
func decodeCodes(body []byte) ([]string, error) {
	var codes []string
	if err := json.Unmarshal(body, &codes); err == nil {
		return codes, nil
	}

	var records []struct {
		CourseCode string `json:"course_code"`
	}
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	codes = make([]string, 0, len(records))
	for _, r := range records {
		codes = append(codes, r.CourseCode)
	}
	return codes, nil
}
