// Package export renders snapshots of orbital systems as SVG.
package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/orbsim/internal/domain"
	"github.com/san-kum/orbsim/internal/orbit"
	"github.com/san-kum/orbsim/internal/viz"
)

const margin = 0.08

// SystemToSVG draws every track as an ellipse around the center and every
// placed entity as a dot, size pixels square. Relations are drawn as lines
// between their endpoints. Unassigned entities are listed in a legend.
func SystemToSVG(sys domain.System, size int, theme viz.Theme) string {
	reg := sys.Registry()
	half := float64(size) / 2

	outer := 0.0
	for _, t := range reg.Tracks() {
		outer = math.Max(outer, t.Major)
	}
	scale := 0.0
	if outer > 0 {
		scale = half * (1 - 2*margin) / outer
	}

	pos := make(map[orbit.ID][2]float64)
	if reg.CenterID() != orbit.NoID {
		pos[reg.CenterID()] = [2]float64{half, half}
	}
	var unassigned []string
	for _, id := range reg.Entities() {
		e, _ := reg.Entity(id)
		t := e.Track()
		if t.IsUnassigned() {
			unassigned = append(unassigned, e.Name())
			continue
		}
		a := e.Angle() * math.Pi / 180
		pos[id] = [2]float64{
			half + t.Major*scale*math.Cos(a),
			half - t.Minor*scale*math.Sin(a),
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	sb.WriteString(fmt.Sprintf(`<g fill="none" stroke="%s" stroke-width="1">
`, theme.Track))
	for _, t := range reg.Tracks() {
		if t.IsUnassigned() {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f"/>
`, half, half, t.Major*scale, t.Minor*scale))
	}
	sb.WriteString("</g>\n")

	if edges := reg.Graph().Edges(); len(edges) > 0 {
		sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="0.8" opacity="0.6">
`, theme.Muted))
		for edge := range edges {
			a, okA := pos[edge.From]
			b, okB := pos[edge.To]
			if !okA || !okB {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, a[0], a[1], b[0], b[1]))
		}
		sb.WriteString("</g>\n")
	}

	if c, id := reg.Center(); c != nil {
		p := pos[id]
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="6" fill="%s"><title>%s</title></circle>
`, p[0], p[1], theme.Primary, html.EscapeString(c.Name())))
	}
	sb.WriteString(fmt.Sprintf(`<g fill="%s">
`, theme.Entity))
	for _, id := range reg.Entities() {
		p, ok := pos[id]
		if !ok {
			continue
		}
		e, _ := reg.Entity(id)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3"><title>%s</title></circle>
`, p[0], p[1], html.EscapeString(e.Name())))
	}
	sb.WriteString("</g>\n")

	if len(unassigned) > 0 {
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="11">unassigned: %s</text>
`, size-8, theme.Text, html.EscapeString(strings.Join(unassigned, ", "))))
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}
