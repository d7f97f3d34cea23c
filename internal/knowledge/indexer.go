package knowledge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/mydpo/mydpo/internal/progress"
)

// IndexDir indexes markdown guidance files found under dir. Patterns use
// doublestar globs relative to dir; when empty, every .md file is indexed.
// The first heading becomes the article title and the parent directory name
// its topic. rep may be nil. Returns the number of files indexed.
func (s *Store) IndexDir(ctx context.Context, dir string, patterns []string, rep progress.Reporter) (int, error) {
	if len(patterns) == 0 {
		patterns = []string{"**/*.md"}
	}

	var articles []Article
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		matched := false
		for _, pattern := range patterns {
			if ok, err := doublestar.PathMatch(pattern, rel); err == nil && ok {
				matched = true
				break
			}
		}
		if !matched {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if len(content) == 0 {
			return nil
		}

		articles = append(articles, Article{
			ID:      strings.TrimSuffix(rel, filepath.Ext(rel)),
			Title:   firstHeading(string(content), d.Name()),
			Topic:   Topic(filepath.Base(filepath.Dir(rel))),
			Source:  rel,
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return 0, err
	}

	if rep != nil {
		rep.Start(len(articles))
		defer rep.Finish()
	}
	for i, article := range articles {
		if err := s.Add(ctx, []Article{article}); err != nil {
			return i, err
		}
		if rep != nil {
			rep.Update(i+1, article.Source)
		}
	}
	return len(articles), nil
}

// firstHeading returns the first markdown heading in content, or fallback.
func firstHeading(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return fallback
}
