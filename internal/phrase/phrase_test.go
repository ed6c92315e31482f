package phrase

import (
	"strings"
	"testing"
)

func TestResolveFilename_StandardTable(t *testing.T) {
	cases := map[string]string{
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

	if len(cases) != len(Filenames) {
		t.Fatalf("standard table has %d entries, want %d", len(Filenames), len(cases))
	}

	for text, want := range cases {
		if got := ResolveFilename(text); got != want {
			t.Errorf("ResolveFilename(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestResolveFilename_TableIsCaseSensitive(t *testing.T) {
	// "work complete!" is not a table key; it must go through slugification.
	// The result happens to collide with the table entry's filename, which is
	// exactly what keeps the cache consistent for near-miss spellings.
	if got := ResolveFilename("work complete!"); got != "work-complete.mp3" {
		t.Errorf("ResolveFilename(%q) = %q, want %q", "work complete!", got, "work-complete.mp3")
	}
	if got := ResolveFilename("WORK COMPLETE!"); got != "work-complete.mp3" {
		t.Errorf("ResolveFilename(%q) = %q, want %q", "WORK COMPLETE!", got, "work-complete.mp3")
	}
}

func TestResolveFilename_Slugged(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Hello, World!!!", "hello-world.mp3"},
		{"", ".mp3"},
		{"!!!???...", ".mp3"},
		{"  spaced   out  ", "spaced-out.mp3"},
		{"already-hyphenated phrase", "already-hyphenated-phrase.mp3"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines.mp3"},
		{"MiXeD CaSe 123", "mixed-case-123.mp3"},
	}

	for _, tc := range cases {
		if got := ResolveFilename(tc.text); got != tc.want {
			t.Errorf("ResolveFilename(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestResolveFilename_Deterministic(t *testing.T) {
	inputs := []string{
		"Deployment finished without errors",
		"Hello, World!!!",
		"",
		strings.Repeat("long phrase ", 20),
	}
	for _, in := range inputs {
		first := ResolveFilename(in)
		second := ResolveFilename(in)
		if first != second {
			t.Errorf("ResolveFilename(%q) not deterministic: %q vs %q", in, first, second)
		}
	}
}

func TestSlugify_Truncation(t *testing.T) {
	long := strings.Repeat("abcde ", 20) // slugifies well past the limit
	slug := Slugify(long)
	if len([]rune(slug)) != MaxSlugLen {
		t.Errorf("Slugify truncated to %d runes, want %d", len([]rune(slug)), MaxSlugLen)
	}

	name := ResolveFilename(long)
	if !strings.HasSuffix(name, Extension) {
		t.Errorf("ResolveFilename(long) = %q, missing %q suffix", name, Extension)
	}
	if len([]rune(name)) != MaxSlugLen+len(Extension) {
		t.Errorf("ResolveFilename(long) length = %d, want %d", len([]rune(name)), MaxSlugLen+len(Extension))
	}
}

func TestSlugify_ExactLimitNotTruncated(t *testing.T) {
	exact := strings.Repeat("a", MaxSlugLen)
	if got := Slugify(exact); got != exact {
		t.Errorf("Slugify(%d a's) = %q, want unchanged", MaxSlugLen, got)
	}
}
