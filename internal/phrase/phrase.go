// Package phrase maps spoken text to deterministic audio cache filenames.
//
// A small set of common completion phrases carries pre-assigned, human-friendly
// filenames so that pre-generated clips shipped with the project template line up
// with what the resolver computes at runtime. Everything else is slugified.
package phrase

import (
	"strings"
	"unicode"
)

// Extension is the audio container format for every cache entry.
const Extension = ".mp3"

// MaxSlugLen is the maximum length of a slug in runes, before Extension is
// appended.
const MaxSlugLen = 50

// Filenames is the standard phrase table: exact, case-sensitive phrase text
// mapped to its pre-assigned cache filename. Consumers (the project template's
// pre-generated cache, hook scripts) depend on these exact names, so entries are
// never renamed. Read-only after process start.
var Filenames = map[string]string{
	"Work complete!":                "work-complete.mp3",
	"Task finished!":                "task-finished.mp3",
	"All done!":                     "all-done.mp3",
	"Job complete!":                 "job-complete.mp3",
	"Ready for next task!":          "ready-for-next-task.mp3",
	"Subagent complete!":            "subagent-complete.mp3",
	"Test passed!":                  "test-passed.mp3",
	"Build successful!":             "build-successful.mp3",
	"Setup completed successfully!": "setup-completed-successfully.mp3",
	"Error occurred!":               "error-occurred.mp3",
	"Build failed!":                 "build-failed.mp3",
	"Review complete!":              "review-complete.mp3",
}

// ResolveFilename computes the cache filename for a phrase.
//
// Phrases in the standard table return their pre-assigned filename unchanged.
// Any other input is slugified and suffixed with Extension. The function is
// total: every string, including the empty string and strings of pure
// punctuation, resolves to some filename. Identical input always yields
// identical output, which is what makes the cache content-addressed by exact
// phrase text.
func ResolveFilename(text string) string {
	if name, ok := Filenames[text]; ok {
		return name
	}
	return Slugify(text) + Extension
}

// Slugify normalizes a phrase into a filesystem-safe cache key stem:
// lower-cased, with every rune that is not a letter, digit, whitespace, or
// hyphen removed, whitespace runs collapsed into single hyphens, and the result
// truncated to MaxSlugLen runes. An input with no usable runes yields "".
func Slugify(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// everything else is dropped
	}

	// Trim first so leading/trailing whitespace never becomes a hyphen.
	fields := strings.Fields(b.String())
	slug := strings.Join(fields, "-")

	if runes := []rune(slug); len(runes) > MaxSlugLen {
		slug = string(runes[:MaxSlugLen])
	}
	return slug
}
