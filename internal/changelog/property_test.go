package changelog

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// ============================================================================
// Property-Based Tests for Extract and Update
// ============================================================================

// bodyLine draws a line that can never end a section.
func bodyLine() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(""),
		rapid.Just("   "),
		rapid.StringMatching(`### (Added|Changed|Fixed|Removed)`),
		rapid.StringMatching(`- [a-zA-Z0-9 ,.]{1,30}`),
	)
}

func drawBody(t *rapid.T, label string) []string {
	return rapid.SliceOfN(bodyLine(), 0, 8).Draw(t, label)
}

func drawVersion(t *rapid.T, label string) string {
	major := rapid.IntRange(0, 9).Draw(t, label+"-major")
	minor := rapid.IntRange(0, 20).Draw(t, label+"-minor")
	patch := rapid.IntRange(0, 20).Draw(t, label+"-patch")
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}

func expectedBody(lines []string) string {
	return joinBody(lines)
}

// TestProperty_ExtractIgnoresVPrefix verifies that "X.Y.Z" and "vX.Y.Z" extract the same body.
func TestProperty_ExtractIgnoresVPrefix(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		version := drawVersion(t, "version")
		body := drawBody(t, "body")
		terminator := rapid.SampledFrom([]string{
			"## [v0.0.1] - 2020-01-01",
			"[Unreleased]: https://github.com/o/r/compare/v0.0.1...HEAD",
			"[v0.0.1]: https://github.com/o/r/releases/tag/v0.0.1",
		}).Draw(t, "terminator")

		lines := append([]string{"# Changelog", "", "## [v" + version + "] - 2025-01-01"}, body...)
		lines = append(lines, terminator, "- after the section")
		doc := &Document{Lines: lines}

		bare, err := doc.Extract(version)
		if err != nil {
			t.Fatalf("Extract(%q): %v", version, err)
		}
		prefixed, err := doc.Extract("v" + version)
		if err != nil {
			t.Fatalf("Extract(%q): %v", "v"+version, err)
		}

		if bare != prefixed {
			t.Fatalf("bare and prefixed extracts differ: %q vs %q", bare, prefixed)
		}
		if want := expectedBody(body); bare != want {
			t.Fatalf("Extract = %q, want %q", bare, want)
		}
		if strings.Contains(bare, "## [") || strings.Contains(bare, "after the section") {
			t.Fatalf("extract leaked past the section end: %q", bare)
		}
	})
}

// TestProperty_ExactMatchBeatsUnreleased verifies the fallback is used only for absent versions.
func TestProperty_ExactMatchBeatsUnreleased(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		version := drawVersion(t, "version")
		unreleased := append(drawBody(t, "unreleased"), "- pending change")
		released := drawBody(t, "released")

		lines := append([]string{"## [Unreleased]"}, unreleased...)
		lines = append(lines, "## [v"+version+"] - 2025-01-01")
		lines = append(lines, released...)
		doc := &Document{Lines: lines}

		got, err := doc.Extract(version)
		if err != nil {
			t.Fatalf("Extract(%q): %v", version, err)
		}
		if want := expectedBody(released); got != want {
			t.Fatalf("Extract(%q) = %q, want released body %q", version, got, want)
		}

		got, err = doc.Extract("v99.0.0")
		if err != nil {
			t.Fatalf("Extract fallback: %v", err)
		}
		if want := expectedBody(unreleased); got != want {
			t.Fatalf("fallback = %q, want unreleased body %q", got, want)
		}
	})
}

// TestProperty_UpdateRoundTrip verifies that after an update the new version
// holds the old unreleased body and the previous version is untouched.
func TestProperty_UpdateRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		unreleased := drawBody(t, "unreleased")
		previousBody := drawBody(t, "previous")

		lines := append([]string{"# Changelog", "", "## [Unreleased]"}, unreleased...)
		lines = append(lines, "## [v0.3.0] - 2025-10-03")
		lines = append(lines, previousBody...)
		lines = append(lines,
			"[Unreleased]: https://github.com/o/r/compare/v0.3.0...HEAD",
			"[v0.3.0]: https://github.com/o/r/compare/v0.2.0...v0.3.0",
			"",
		)
		doc := &Document{Lines: lines}

		previousBefore, err := doc.Extract("v0.3.0")
		if err != nil {
			t.Fatalf("Extract before update: %v", err)
		}

		result := doc.Update("v0.4.0", "v0.3.0", "2025-10-16")
		if !result.HeaderRewritten || !result.LinksRewritten {
			t.Fatalf("expected both rewrites, got %+v", result)
		}

		got, err := doc.Extract("v0.4.0")
		if err != nil {
			t.Fatalf("Extract new version: %v", err)
		}
		if want := expectedBody(unreleased); got != want {
			t.Fatalf("new version body = %q, want %q", got, want)
		}

		got, err = doc.Extract("v0.3.0")
		if err != nil {
			t.Fatalf("Extract previous version: %v", err)
		}
		if got != previousBefore {
			t.Fatalf("previous version body changed: %q -> %q", previousBefore, got)
		}

		content := doc.String()
		for _, want := range []string{
			"[Unreleased]: https://github.com/o/r/compare/v0.4.0...HEAD\n[v0.4.0]: https://github.com/o/r/compare/v0.3.0...v0.4.0",
			"[v0.3.0]: https://github.com/o/r/compare/v0.2.0...v0.3.0",
		} {
			if !strings.Contains(content, want) {
				t.Fatalf("updated document missing %q", want)
			}
		}
	})
}

// TestProperty_UpdateInsertsOnce verifies that exactly one header pair is
// inserted however many "## [Unreleased]" lines the document has.
func TestProperty_UpdateInsertsOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		copies := rapid.IntRange(1, 5).Draw(t, "copies")

		var lines []string
		for i := 0; i < copies; i++ {
			lines = append(lines, "## [Unreleased]")
			lines = append(lines, drawBody(t, fmt.Sprintf("body-%d", i))...)
		}
		doc := &Document{Lines: lines}
		before := len(doc.Lines)

		doc.Update("v1.0.0", "v0.9.0", "2025-10-16")

		if got := len(doc.Lines) - before; got != 2 {
			t.Fatalf("expected 2 inserted lines, got %d", got)
		}

		headers := 0
		unreleased := 0
		for _, line := range doc.Lines {
			switch line {
			case "## [v1.0.0] - 2025-10-16":
				headers++
			case "## [Unreleased]":
				unreleased++
			}
		}
		if headers != 1 {
			t.Fatalf("expected 1 new version header, got %d", headers)
		}
		if unreleased != copies {
			t.Fatalf("expected %d unreleased headers, got %d", copies, unreleased)
		}
	})
}

// TestProperty_UntouchedLinesSurvive verifies that a document without an
// unreleased header or link is rewritten byte for byte.
func TestProperty_UntouchedLinesSurvive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOf(bodyLine()).Draw(t, "lines")
		content := strings.Join(lines, "\n")

		doc := Parse(content)
		result := doc.Update("v1.0.0", "v0.9.0", "2025-10-16")

		if result.Changed() {
			t.Fatalf("unexpected rewrite: %+v", result)
		}
		if doc.String() != content {
			t.Fatalf("content changed: %q -> %q", content, doc.String())
		}
	})
}
