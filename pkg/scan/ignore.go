package scan

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/rs/zerolog/log"
)

const gitDir = ".git"

var (
	execCommand   = exec.Command
	osReadFile    = os.ReadFile
	osUserHomeDir = os.UserHomeDir
)

// loadIgnoreMatcher collects .gitignore files below root, a root-level .ignore file
// and the global git excludes file into one matcher.
func loadIgnoreMatcher(root string) gitignore.Matcher {
	patterns := loadGlobalIgnorePatterns(root)
	if filePatterns, err := loadIgnorePatternsFromFile(filepath.Join(root, ".ignore")); err == nil {
		patterns = append(patterns, filePatterns...)
	}
	treePatterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		log.Debug().Err(err).Str("root", root).Msg("failed to read .gitignore patterns")
	}
	patterns = append(patterns, treePatterns...)
	if len(patterns) == 0 {
		return nil
	}
	return gitignore.NewMatcher(patterns)
}

// isIgnoredPath matches a slash separated path relative to the walk root.
func isIgnoredPath(rel string, isDir bool, matcher gitignore.Matcher) bool {
	if matcher == nil {
		return false
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	return matcher.Match(segments, isDir)
}

func loadGlobalIgnorePatterns(root string) []gitignore.Pattern {
	patterns := make([]gitignore.Pattern, 0)
	excludesPath, ok := getGlobalExcludesFile(root)
	if ok {
		filePatterns, err := loadIgnorePatternsFromFile(excludesPath)
		if err == nil {
			patterns = append(patterns, filePatterns...)
		}
		return patterns
	}
	defaultPattern := gitignore.ParsePattern(".DS_Store", nil)
	patterns = append(patterns, defaultPattern)
	return patterns
}

func loadIgnorePatternsFromFile(path string) ([]gitignore.Pattern, error) {
	content, err := osReadFile(path)
	if err != nil {
		return nil, err
	}
	patterns := parseIgnorePatterns(content)
	return patterns, nil
}

func parseIgnorePatterns(content []byte) []gitignore.Pattern {
	patterns := make([]gitignore.Pattern, 0)
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "#") {
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		pattern := gitignore.ParsePattern(line, nil)
		patterns = append(patterns, pattern)
	}
	return patterns
}

var getGlobalExcludesFile = func(root string) (string, bool) {
	cmd := execCommand("git", "-C", root, "config", "--get", "core.excludesFile")
	output, err := cmd.Output()
	if err != nil {
		return "", false
	}
	raw := strings.TrimSpace(string(output))
	if raw == "" {
		return "", false
	}
	if raw == "~" || strings.HasPrefix(raw, "~/") {
		home, homeErr := osUserHomeDir()
		if homeErr == nil {
			if raw == "~" {
				raw = home
			} else {
				raw = filepath.Join(home, strings.TrimPrefix(raw, "~/"))
			}
		}
	}
	return raw, true
}
