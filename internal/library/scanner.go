package library

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Scanner discovers bilingual subtitle pairs under a set of directories.
// Files are paired when they share a directory and basename and differ only
// in the language suffix (<base>_<lang>.srt, case-insensitive).
type Scanner struct {
	dirs            []string
	primarySuffix   string
	secondarySuffix string
}

// NewScanner validates both language tokens and builds the filename suffixes
// from their normalized ISO 639-1 base codes.
func NewScanner(dirs []string, primaryLang, secondaryLang string) (*Scanner, error) {
	primary, err := normalizeLangCode(primaryLang)
	if err != nil {
		return nil, fmt.Errorf("invalid primary language %q: %w", primaryLang, err)
	}
	secondary, err := normalizeLangCode(secondaryLang)
	if err != nil {
		return nil, fmt.Errorf("invalid secondary language %q: %w", secondaryLang, err)
	}
	if primary == secondary {
		return nil, fmt.Errorf("primary and secondary language are both %q", primary)
	}

	return &Scanner{
		dirs:            dirs,
		primarySuffix:   "_" + primary + ".srt",
		secondarySuffix: "_" + secondary + ".srt",
	}, nil
}

type pairEntry struct {
	primary   string
	secondary string
}

// Scan walks every configured root and pairs files by basename. Missing
// roots are skipped, not fatal. Pairs come back sorted by base name for
// deterministic processing order.
func (s *Scanner) Scan(ctx context.Context) (*ScanResult, error) {
	entries := make(map[string]*pairEntry)
	keys := make([]string, 0)

	for _, dir := range s.dirs {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if d.IsDir() {
				return nil
			}

			name := strings.ToLower(d.Name())
			var isPrimary bool
			var base string
			switch {
			case strings.HasSuffix(name, s.primarySuffix):
				isPrimary = true
				base = d.Name()[:len(d.Name())-len(s.primarySuffix)]
			case strings.HasSuffix(name, s.secondarySuffix):
				base = d.Name()[:len(d.Name())-len(s.secondarySuffix)]
			default:
				return nil
			}

			key := filepath.Join(filepath.Dir(path), base)
			entry, ok := entries[key]
			if !ok {
				entry = &pairEntry{}
				entries[key] = entry
				keys = append(keys, key)
			}
			if isPrimary {
				entry.primary = path
			} else {
				entry.secondary = path
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(keys)

	ret := &ScanResult{Pairs: make([]PairRef, 0, len(keys))}
	for _, key := range keys {
		entry := entries[key]
		if entry.primary != "" && entry.secondary != "" {
			ret.Pairs = append(ret.Pairs, PairRef{
				Base:          filepath.Base(key),
				PrimaryPath:   entry.primary,
				SecondaryPath: entry.secondary,
			})
			continue
		}
		if entry.primary != "" {
			ret.Unmatched = append(ret.Unmatched, entry.primary)
		}
		if entry.secondary != "" {
			ret.Unmatched = append(ret.Unmatched, entry.secondary)
		}
	}

	return ret, nil
}

// normalizeLangCode validates a language token and returns its normalized
// ISO 639-1 base code (e.g. "eng"→"en", "rus"→"ru").
func normalizeLangCode(token string) (string, error) {
	tag, err := language.Parse(token)
	if err != nil {
		return "", err
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", fmt.Errorf("unrecognized language token")
	}
	return base.String(), nil
}
