package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	versionStyle = color.New(color.Bold)
	dateStyle    = color.New(color.Faint)
	emptyStyle   = color.New(color.FgYellow)
	checkStyle   = color.New(color.FgGreen)
	skipStyle    = color.New(color.FgYellow)
	insertStyle  = color.New(color.FgGreen)
	deleteStyle  = color.New(color.FgRed)
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain bool // Disable colors and icons
}

// paint applies c unless plain output was requested.
func paint(c *color.Color, s string, opts FormatOptions) string {
	if opts.Plain {
		return s
	}
	return c.Sprint(s)
}

// FormatSections writes one line per section: label, date, header line
// number and whether the body is empty.
func FormatSections(sections []Section, w io.Writer, opts FormatOptions) error {
	if len(sections) == 0 {
		_, err := fmt.Fprintln(w, "No sections found.")
		return err
	}

	width := 0
	for _, s := range sections {
		width = max(width, len(s.Version))
	}

	for _, s := range sections {
		label := s.Version + strings.Repeat(" ", width-len(s.Version))
		date := s.Date
		if date == "" {
			date = "-"
		}

		line := fmt.Sprintf("%s  %s  line %d",
			paint(versionStyle, label, opts), paint(dateStyle, fmt.Sprintf("%-10s", date), opts), s.Line)
		if s.Empty {
			line += "  " + paint(emptyStyle, "(empty)", opts)
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatUpdateSummary writes the confirmation printed after an update.
func FormatUpdateSummary(r *UpdateResult, path string, w io.Writer, opts FormatOptions) error {
	icon := "✓"
	if !r.Changed() {
		icon = "!"
	}
	mark := checkStyle
	if !r.Changed() {
		mark = skipStyle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Updated %s:\n", paint(mark, icon, opts), path)

	if r.AlreadyReleased {
		fmt.Fprintf(&b, "  - %s\n", paint(skipStyle,
			fmt.Sprintf("Version [%s] already present, headers and links unchanged", r.NewVersion), opts))
		_, err := io.WriteString(w, b.String())
		return err
	}

	if r.HeaderRewritten {
		fmt.Fprintf(&b, "  - Added new empty [%s] section\n", UnreleasedLabel)
		fmt.Fprintf(&b, "  - Updated version to [%s] with release date %s\n", r.NewVersion, r.ReleaseDate)
	} else {
		fmt.Fprintf(&b, "  - %s\n", paint(skipStyle,
			fmt.Sprintf("No %q header found, section headers unchanged", unreleasedHeader), opts))
	}

	if r.LinksRewritten {
		fmt.Fprintf(&b, "  - Updated comparison links (%s...HEAD, %s...%s)\n",
			r.NewVersion, r.PreviousVersion, r.NewVersion)
	} else {
		fmt.Fprintf(&b, "  - %s\n", paint(skipStyle,
			fmt.Sprintf("No %q GitHub link found, comparison links unchanged", unreleasedLinkPrefix), opts))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatDiff writes diff lines prefixed with "+", "-" or a space.
func FormatDiff(lines []DiffLine, w io.Writer, opts FormatOptions) error {
	for _, l := range lines {
		var s string
		switch l.Kind {
		case DiffInsert:
			s = paint(insertStyle, "+ "+l.Text, opts)
		case DiffDelete:
			s = paint(deleteStyle, "- "+l.Text, opts)
		default:
			s = "  " + l.Text
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
