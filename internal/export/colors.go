package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultColorKey names the fallback entry of a color table.
const DefaultColorKey = "default"

type RGB [3]int

// Hex renders the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(c[0]), clamp(c[1]), clamp(c[2]))
}

func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", hex)
	}
	var c RGB
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid hex color %q", hex)
		}
		c[i] = int(v)
	}
	return c, nil
}

func clamp(v int) int {
	return max(0, min(255, v))
}

// Colors maps a legend label to its fill color. The "default" entry is used
// for rows whose category matches no label.
type Colors map[string]RGB

var legendOrder = []string{
	"Theatre Plays",
	"Dance & Music Events",
	"Talks & Seminars",
	"Exhibitions",
	"Master class /Lecture / Workshops / Others",
	"Film Festival",
}

func DefaultColors() Colors {
	return Colors{
		"Theatre Plays":        {255, 204, 153},
		"Dance & Music Events": {153, 204, 0},
		"Talks & Seminars":     {153, 204, 255},
		"Exhibitions":          {255, 255, 153},
		"Master class /Lecture / Workshops / Others": {204, 153, 255},
		"Film Festival":  {204, 255, 255},
		DefaultColorKey: {245, 245, 245},
	}
}

// Legend returns the labels in display order: the built-in labels first, then
// any custom labels alphabetically. The default entry is never listed.
func (c Colors) Legend() []string {
	var labels []string
	seen := map[string]bool{DefaultColorKey: true}
	for _, l := range legendOrder {
		if _, ok := c[l]; ok {
			labels = append(labels, l)
			seen[l] = true
		}
	}
	var extra []string
	for l := range c {
		if !seen[l] {
			extra = append(extra, l)
		}
	}
	sort.Strings(extra)
	return append(labels, extra...)
}

// For picks the color of the first legend label that contains the category or
// is contained by it, ignoring case. Empty categories get the default color.
func (c Colors) For(category string) RGB {
	cat := strings.ToLower(strings.TrimSpace(category))
	if cat != "" {
		for _, label := range c.Legend() {
			l := strings.ToLower(label)
			if strings.Contains(cat, l) || strings.Contains(l, cat) {
				return c[label]
			}
		}
	}
	if def, ok := c[DefaultColorKey]; ok {
		return def
	}
	return DefaultColors()[DefaultColorKey]
}

// Merge overlays other onto a copy of c.
func (c Colors) Merge(other Colors) Colors {
	out := make(Colors, len(c)+len(other))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
