package source

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreFileName is read from the source root to filter listings, one
// glob pattern per line. Lines starting with # are comments. A pattern
// ending in / matches directories only.
const IgnoreFileName = ".tbignore"

// IgnoreList filters directory entries out of tree listings.
type IgnoreList struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	glob    string
	dirOnly bool
}

// LoadIgnoreFile reads the ignore file in dir. A missing file yields
// (nil, nil).
func LoadIgnoreFile(dir string) (*IgnoreList, error) {
	file, err := os.Open(filepath.Join(dir, IgnoreFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	list := &IgnoreList{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p := ignorePattern{glob: strings.TrimSuffix(line, "/")}
		p.dirOnly = strings.HasSuffix(line, "/")
		list.patterns = append(list.patterns, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// NewIgnoreList builds a list from literal patterns, for callers that do
// not use an ignore file.
func NewIgnoreList(patterns ...string) *IgnoreList {
	list := &IgnoreList{}
	for _, line := range patterns {
		list.patterns = append(list.patterns, ignorePattern{
			glob:    strings.TrimSuffix(line, "/"),
			dirOnly: strings.HasSuffix(line, "/"),
		})
	}
	return list
}

// Match reports whether an entry with the given base name should be
// hidden. A nil list hides nothing.
func (l *IgnoreList) Match(name string, isDir bool) bool {
	if l == nil {
		return false
	}
	for _, p := range l.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		if ok, err := filepath.Match(p.glob, name); err == nil && ok {
			return true
		}
	}
	return false
}
