package domain

import (
	"path"
	"sort"
	"strings"
)

// languageByExtension maps a file extension to the language identifier
// the remote execution API understands. Treated as configuration data:
// extending it never touches control flow.
var languageByExtension = map[string]string{
	".cpp":  "cpp17",
	".java": "java",
	".py":   "python3",
	".js":   "nodejs",
}

// LanguageForFile resolves the execution language from the file name's
// extension. The second return is false for unrecognized extensions.
func LanguageForFile(fileName string) (string, bool) {
	ext := strings.ToLower(path.Ext(fileName))
	lang, ok := languageByExtension[ext]
	return lang, ok
}

// SupportedExtensions lists the recognized extensions, sorted.
func SupportedExtensions() []string {
	out := make([]string, 0, len(languageByExtension))
	for ext := range languageByExtension {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
