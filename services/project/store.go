// Package project manages the on-disk project store: one directory per
// generated website under a single root, plus preview URL derivation.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fsagrahari23/webagentic/models"
	"github.com/fsagrahari23/webagentic/services/policy"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

const IndexFileName = "index.html"

type Store struct {
	root           string
	previewBaseURL string
}

func NewStore(root, previewBaseURL string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project store root: %v", err)
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create project store root: %v", err)
	}

	return &Store{
		root:           abs,
		previewBaseURL: strings.TrimRight(previewBaseURL, "/"),
	}, nil
}

func (s *Store) Root() string {
	return s.root
}

// NewProjectID returns a time-based id with a random suffix, e.g.
// "site-1756300000000-3f9a1c2b". The timestamp makes ids sortable by
// creation time; the suffix makes collisions practically impossible.
func NewProjectID() string {
	return fmt.Sprintf("site-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// CreateProject allocates a fresh project id and creates its directory.
func (s *Store) CreateProject() (string, string, error) {
	id := NewProjectID()
	dir := filepath.Join(s.root, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create project directory: %v", err)
	}

	return id, dir, nil
}

// Resolve joins a validated relative path onto a project directory. Every
// path-bearing tool call must go through here before touching the filesystem.
func Resolve(projectDir, rel string) (string, error) {
	if err := policy.ValidatePath(rel); err != nil {
		return "", err
	}
	return filepath.Join(projectDir, filepath.FromSlash(rel)), nil
}

func (s *Store) HasIndexFile(projectDir string) bool {
	info, err := os.Stat(filepath.Join(projectDir, IndexFileName))
	return err == nil && info.Mode().IsRegular()
}

func (s *Store) PreviewURL(projectID string) string {
	return s.previewBaseURL + "/" + projectID + "/"
}

// ListWebsites returns every project that contains an index file, newest
// first. A non-empty query fuzzy-filters on project ids.
func (s *Store) ListWebsites(query string) ([]models.WebsiteInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read project store root: %v", err)
	}

	sites := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		return e.IsDir() && s.HasIndexFile(filepath.Join(s.root, e.Name()))
	})

	if query != "" {
		sites = lo.Filter(sites, func(e os.DirEntry, _ int) bool {
			return fuzzy.MatchFold(query, e.Name())
		})
	}

	infos := lo.Map(sites, func(e os.DirEntry, _ int) models.WebsiteInfo {
		modified := time.Time{}
		if info, err := e.Info(); err == nil {
			modified = info.ModTime()
		}

		created := createdAtFromID(e.Name())
		if created.IsZero() {
			created = modified
		}

		return models.WebsiteInfo{
			ProjectID:  e.Name(),
			PreviewURL: s.PreviewURL(e.Name()),
			CreatedAt:  created.UTC().Format(time.RFC3339),
			ModifiedAt: modified.UTC().Format(time.RFC3339),
		}
	})

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt > infos[j].CreatedAt
	})

	return infos, nil
}

// createdAtFromID recovers the creation time embedded in a project id.
// Returns the zero time for ids that don't follow the site-<millis>-<suffix>
// format.
func createdAtFromID(id string) time.Time {
	parts := strings.Split(id, "-")
	if len(parts) < 3 || parts[0] != "site" {
		return time.Time{}
	}

	millis, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.UnixMilli(millis)
}
