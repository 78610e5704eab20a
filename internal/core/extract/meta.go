package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/petejohansson/papervec/internal/models"
)

// Filename convention for the paper archive: [YYYY]_Author_Keyword(s).pdf.
// Author and keyword may contain hyphens; everything after the second
// underscore is the keyword part.
var filenamePattern = regexp.MustCompile(`^\[(\d{4})\]_([^_]+)_(.+)\.pdf$`)

// MetaFromFilename extracts year, first author and keyword string from a
// filename following the archive convention. A non-matching name returns the
// zero value; the caller falls back to defaults.
func MetaFromFilename(name string) models.FileNameMeta {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return models.FileNameMeta{}
	}

	year, _ := strconv.Atoi(m[1])
	return models.FileNameMeta{
		Year:          year,
		Author:        m[2],
		KeywordString: m[3],
	}
}

// TitleHeuristic guesses the paper title from the first few non-empty lines of
// extracted text: titles tend to be short lines near the top. Returns "" when
// no plausible line is found.
func TitleHeuristic(text string, numLines int) string {
	lines := make([]string, 0, numLines)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
		if len(lines) >= numLines {
			break
		}
	}

	for _, line := range lines {
		if len(line) > 5 && len(line) < 150 {
			return line
		}
	}
	return ""
}
