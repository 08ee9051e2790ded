package tangential

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/tdewolff/parse/v2/strconv"
)

// curveSegments is the number of line segments that replace a Bézier curve.
const curveSegments = 16

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

func parseNum(path []byte) (float64, int, error) {
	i := skipCommaWhitespace(path)
	f, n := strconv.ParseFloat(path[i:])
	if n == 0 {
		return 0.0, i, fmt.Errorf("bad number at %q", truncate(path[i:], 10))
	}
	return f, i + n, nil
}

func truncate(b []byte, n int) string {
	if n < len(b) {
		return string(b[:n]) + "..."
	}
	return string(b)
}

type ringParser struct {
	rings []orb.Ring
	cur   orb.Ring
	start Point
	pos   Point
}

func (p *ringParser) moveTo(q Point) {
	p.close()
	p.cur = orb.Ring{q.Orb()}
	p.start, p.pos = q, q
}

func (p *ringParser) lineTo(q Point) {
	if p.cur == nil {
		p.cur = orb.Ring{p.pos.Orb()}
		p.start = p.pos
	}
	if !q.Equals(p.pos) {
		p.cur = append(p.cur, q.Orb())
	}
	p.pos = q
}

func (p *ringParser) cubeTo(c1, c2, q Point) {
	p0 := p.pos
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		a, b, c := p0.Interpolate(c1, t), c1.Interpolate(c2, t), c2.Interpolate(q, t)
		p.lineTo(a.Interpolate(b, t).Interpolate(b.Interpolate(c, t), t))
	}
	p.pos = q
}

func (p *ringParser) quadTo(c1, q Point) {
	p0 := p.pos
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		p.lineTo(p0.Interpolate(c1, t).Interpolate(c1.Interpolate(q, t), t))
	}
	p.pos = q
}

func (p *ringParser) close() {
	if p.cur != nil {
		p.rings = append(p.rings, p.cur)
	}
	p.cur = nil
	p.pos = p.start
}

// ParseSVGPolygon parses SVG path data into a polygon. Every subpath becomes a ring, curves are flattened and arcs are not supported. The ring with the largest area becomes the exterior and the others its holes. Rings that do not enclose an area are dropped.
func ParseSVGPolygon(sPath string) (orb.Polygon, error) {
	path := []byte(sPath)
	p := &ringParser{}

	var prevCmd byte
	cp := Point{} // control point
	i := 0
	for {
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i {
			break
		}
		cmd := prevCmd
		if 'A' <= path[i] {
			cmd = path[i]
			i++
		} else if prevCmd == 0 || prevCmd == 'Z' || prevCmd == 'z' {
			return nil, fmt.Errorf("expected command at position %d", i)
		}

		nums := 0
		switch cmd {
		case 'M', 'm', 'L', 'l', 'T', 't':
			nums = 2
		case 'H', 'h', 'V', 'v':
			nums = 1
		case 'Q', 'q', 'S', 's':
			nums = 4
		case 'C', 'c':
			nums = 6
		case 'Z', 'z':
		case 'A', 'a':
			return nil, fmt.Errorf("unsupported arc command at position %d", i-1)
		default:
			return nil, fmt.Errorf("unknown command %q at position %d", cmd, i-1)
		}

		var v [6]float64
		for j := 0; j < nums; j++ {
			f, n, err := parseNum(path[i:])
			if err != nil {
				return nil, err
			}
			v[j] = f
			i += n
		}

		pos := p.pos
		rel := func(x, y float64) Point {
			if 'a' <= cmd {
				return Point{pos.X + x, pos.Y + y}
			}
			return Point{x, y}
		}
		switch cmd {
		case 'M', 'm':
			p.moveTo(rel(v[0], v[1]))
		case 'Z', 'z':
			p.close()
		case 'L', 'l':
			p.lineTo(rel(v[0], v[1]))
		case 'H':
			p.lineTo(Point{v[0], pos.Y})
		case 'h':
			p.lineTo(Point{pos.X + v[0], pos.Y})
		case 'V':
			p.lineTo(Point{pos.X, v[0]})
		case 'v':
			p.lineTo(Point{pos.X, pos.Y + v[0]})
		case 'C', 'c':
			c1, c2 := rel(v[0], v[1]), rel(v[2], v[3])
			p.cubeTo(c1, c2, rel(v[4], v[5]))
			cp = c2
		case 'S', 's':
			c1 := pos
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				c1 = pos.Mul(2.0).Sub(cp)
			}
			c2 := rel(v[0], v[1])
			p.cubeTo(c1, c2, rel(v[2], v[3]))
			cp = c2
		case 'Q', 'q':
			c1 := rel(v[0], v[1])
			p.quadTo(c1, rel(v[2], v[3]))
			cp = c1
		case 'T', 't':
			c1 := pos
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				c1 = pos.Mul(2.0).Sub(cp)
			}
			p.quadTo(c1, rel(v[0], v[1]))
			cp = c1
		}

		// subsequent coordinate pairs after a moveto are implicit linetos
		if cmd == 'M' {
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		}
		prevCmd = cmd
	}
	p.close()

	rings := validRings(p.rings)
	if len(rings) == 0 {
		return nil, fmt.Errorf("path data has no closed area")
	}
	sortRingsByArea(rings)
	return orb.Polygon(rings), nil
}
