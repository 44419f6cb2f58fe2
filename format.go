package jsonunit

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// FormatPrettyString is a convenice wrapper that outputs to a string instead of
// an io.Writer
func FormatPrettyString(diffs Differences, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, diffs, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes one line per difference to w. if colorTTY is true it will
// add
// red "-" for missing values
// green "+" for extra values
// blue "~" for different values
func FormatPretty(w io.Writer, diffs Differences, colorTTY bool) error {
	var colorMap map[DifferenceType]string
	closeColor := ""
	if colorTTY {
		colorMap = map[DifferenceType]string{
			DTMissing:   "\x1b[31m", // red
			DTExtra:     "\x1b[32m", // green
			DTDifferent: "\x1b[34m", // blue
		}
		closeColor = "\x1b[0m"
	}

	for _, d := range diffs {
		path := d.Path()
		if path == "" {
			path = "$"
		}
		var value string
		switch d.Type {
		case DTMissing:
			value = d.Expected.String()
		case DTExtra:
			value = d.Actual.String()
		default:
			value = d.Expected.String() + " => " + d.Actual.String()
		}
		if _, err := fmt.Fprintf(w, "%s%s %s: %s%s\n", colorMap[d.Type], d.Type.symbol(), path, value, closeColor); err != nil {
			return err
		}
	}
	return nil
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(diffStat *Stats) string {
	return formatStats(diffStat, false)
}

// FormatPrettyStatsColor prints a string of stats info with ANSI colors
func FormatPrettyStatsColor(diffStat *Stats) string {
	return formatStats(diffStat, true)
}

func formatStats(ds *Stats, color bool) string {
	var (
		neutralColor, extraColor, missingColor, differentColor, closeColor string
	)

	if ds == nil {
		return ""
	}

	if color {
		neutralColor = "\x1b[37m"
		extraColor = "\x1b[32m"
		missingColor = "\x1b[31m"
		differentColor = "\x1b[34m"
		closeColor = "\x1b[0m"
	}

	buf := &bytes.Buffer{}

	elsColor := extraColor
	change := ds.NodeChange()
	sign := "+"
	if change < 0 {
		elsColor = missingColor
		sign = ""
	} else if change == 0 {
		elsColor = neutralColor
		sign = ""
	}
	elementsWord := "elements"
	if change == 1 || change == -1 {
		elementsWord = "element"
	}

	buf.WriteString(fmt.Sprintf("%s%s%d %s%s%s%s.",
		elsColor, sign, change, closeColor,
		neutralColor, elementsWord, closeColor,
	))
	buf.WriteString(fmt.Sprintf(" %s%d missing.%s", missingColor, ds.Missing, closeColor))
	buf.WriteString(fmt.Sprintf(" %s%d extra.%s", extraColor, ds.Extra, closeColor))
	buf.WriteString(fmt.Sprintf(" %s%d different.%s", differentColor, ds.Different, closeColor))
	buf.WriteRune('\n')

	return buf.String()
}

// Normalize renders n as indented JSON. Object members that also exist in
// template come first, in the template's order, followed by the remaining
// members in document order. Rendering the actual document against the
// expected one lines both up for textual diffing
func Normalize(n, template Node) string {
	buf := &strings.Builder{}
	writeNormalized(buf, n, template, 0)
	buf.WriteByte('\n')
	return buf.String()
}

func writeNormalized(buf *strings.Builder, n, template Node, depth int) {
	indent := strings.Repeat("  ", depth+1)
	closing := strings.Repeat("  ", depth)

	switch n.Kind() {
	case KindObject:
		if n.Len() == 0 {
			buf.WriteString("{}")
			return
		}
		var names []string
		seen := map[string]bool{}
		if template.Kind() == KindObject {
			for _, f := range template.Fields() {
				if !n.Field(f.Name).IsMissing() {
					names = append(names, f.Name)
					seen[f.Name] = true
				}
			}
		}
		for _, f := range n.Fields() {
			if !seen[f.Name] {
				names = append(names, f.Name)
			}
		}

		buf.WriteString("{\n")
		for i, name := range names {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(indent)
			buf.WriteString(NewString(name).String())
			buf.WriteString(": ")
			writeNormalized(buf, n.Field(name), template.Field(name), depth+1)
		}
		buf.WriteString("\n" + closing + "}")
	case KindArray:
		if n.Len() == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, e := range n.Elements() {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(indent)
			writeNormalized(buf, e, template.Element(i), depth+1)
		}
		buf.WriteString("\n" + closing + "]")
	default:
		buf.WriteString(n.String())
	}
}
