// Package langdetect decides whether files and Markdown fences hold Python.
// It uses go-enry for extension, shebang and classifier based detection.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names returned by Detect.
const (
	Python = "python"
	Text   = "text"
)

// enryPython is the linguist name for Python.
const enryPython = "Python"

// SniffSize is the number of leading bytes callers pass to IsScript.
const SniffSize = 512

// fenceTags are fence info strings that label Python code.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fenceTags = map[string]bool{
	"python":  true,
	"python3": true,
	"py":      true,
	"py3":     true,
	"pyi":     true,
	"sage":    true,
}

// classifierCandidates are the languages offered to the enry classifier
// when an unlabeled fence has no shebang and no telltale pattern.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Python", "Shell", "JavaScript", "Ruby", "Go", "YAML", "JSON", "Text",
}

// IsPythonFence reports whether a fence info string labels Python code.
// Only the first word of the info string is considered.
func IsPythonFence(info string) bool {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return false
	}
	tag := strings.ToLower(strings.Trim(fields[0], "{}."))
	return fenceTags[tag]
}

// IsPythonPath reports whether the file extension maps to Python.
func IsPythonPath(path string) bool {
	lang, _ := enry.GetLanguageByExtension(filepath.Base(path))
	return lang == enryPython
}

// IsScript reports whether head, the first bytes of a file, starts with a
// shebang line that runs a Python interpreter.
func IsScript(head []byte) bool {
	if !bytes.HasPrefix(head, []byte("#!")) {
		return false
	}
	lang, _ := enry.GetLanguageByShebang(head)
	return lang == enryPython
}

// IsVendored reports whether the path lies in a directory that holds
// third-party code, such as site-packages or a virtualenv.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// Detect returns the lowercase language name for a code snippet.
// Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		return normalize(lang)
	}

	if looksLikePython(string(content)) {
		return Python
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// looksLikePython checks for patterns that are highly indicative of Python.
func looksLikePython(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "def ") && strings.HasSuffix(trimmed, ":"):
			return true
		case strings.HasPrefix(trimmed, "class ") && strings.HasSuffix(trimmed, ":"):
			return true
		case strings.HasPrefix(trimmed, "from ") && strings.Contains(trimmed, " import "):
			return true
		case strings.HasPrefix(trimmed, "import ") && !strings.ContainsAny(trimmed, "(\"';{"):
			return true
		case strings.HasPrefix(trimmed, ">>> "):
			return true
		}
	}
	return strings.Contains(content, "__name__") || strings.Contains(content, "__main__")
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
