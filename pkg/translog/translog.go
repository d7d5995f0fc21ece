// Package translog extracts the list of actually-transferred items from the
// copy tool's per-invocation logs. Detecting transfers from free-text tool
// output is inherently format-coupled, so the coupling is isolated behind the
// LineClassifier interface with one implementation per tool text format.
package translog

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 📄 Item is one file or directory the copy tool reported as transferred.
type Item struct {
	Path string
}

// 🔍 LineClassifier decides whether one log line records a transfer and, if
// so, which path was transferred.
type LineClassifier interface {
	TransferPath(line string) (string, bool)
}

// rootedSegment matches a volume-rooted path segment anywhere in a line.
var rootedSegment = regexp.MustCompile(`[A-Za-z]:\\`)

// transferMarkers are the verbose-log action tags the tool emits for items it
// actually moved: newly created files and directories, newer versions, and
// renames. Everything else (EXTRA, SAME, skip reports, headers, totals) is
// not a transfer.
var transferMarkers = []string{"New File", "New Dir", "Newer", "Renamed"}

// 🛠️ RobocopyLines classifies lines in robocopy's verbose log format.
type RobocopyLines struct{}

// TransferPath reports the transferred path on a line, if any. A transfer
// record carries an action marker and a volume-rooted path; the path is the
// last tab-delimited field. A purely numeric last field is the byte-count
// artifact of the log format, not a path, and yields nothing.
func (RobocopyLines) TransferPath(line string) (string, bool) {
	marked := false
	for _, marker := range transferMarkers {
		if strings.Contains(line, marker) {
			marked = true
			break
		}
	}
	if !marked || !rootedSegment.MatchString(line) {
		return "", false
	}

	fields := strings.Split(line, "\t")
	candidate := strings.TrimSpace(fields[len(fields)-1])
	if candidate == "" || isNumeric(candidate) {
		return "", false
	}
	return candidate, true
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// 🧰 Parser filters transfer records against the run's exclusion lists.
type Parser struct {
	classifier   LineClassifier
	excludeFiles []string
	excludeDirs  []string
}

// 🏭 NewParser creates a parser for one run's exclusion configuration.
func NewParser(classifier LineClassifier, excludeFiles, excludeDirs []string) *Parser {
	return &Parser{
		classifier:   classifier,
		excludeFiles: excludeFiles,
		excludeDirs:  excludeDirs,
	}
}

// 📖 ExtractTransferred scans one per-invocation log and returns the surviving
// transfer records in log order. The caller appends them to the run-wide
// sequence, which is cumulative across all folders and never reset mid-run.
func (p *Parser) ExtractTransferred(logPath string) ([]Item, error) {
	f, err := os.Open(logPath)
	if err != nil {
		return nil, errors.Errorf("opening invocation log: %w", err)
	}
	defer f.Close()

	return p.ExtractFromReader(f)
}

// ExtractFromReader is ExtractTransferred over any reader; tests feed it
// fixture log text directly.
func (p *Parser) ExtractFromReader(r io.Reader) ([]Item, error) {
	var items []Item
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		path, ok := p.classifier.TransferPath(scanner.Text())
		if !ok || p.excluded(path) {
			continue
		}
		items = append(items, Item{Path: path})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("scanning invocation log: %w", err)
	}
	return items, nil
}

// excluded reports whether path lies under an excluded directory name or has
// a filename matching an excluded glob. Directory names match as literal path
// segments; globs match anchored against the filename, case-insensitively,
// the way the copy tool itself treats its exclusion filters.
func (p *Parser) excluded(path string) bool {
	lower := strings.ToLower(path)
	for _, dir := range p.excludeDirs {
		if strings.Contains(lower, `\`+strings.ToLower(dir)+`\`) {
			return true
		}
	}

	name := strings.ToLower(filename(path))
	for _, pattern := range p.excludeFiles {
		matched, err := doublestar.Match(strings.ToLower(pattern), name)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func filename(path string) string {
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		return path[i+1:]
	}
	return path
}
