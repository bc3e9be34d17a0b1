package bezier

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/tdewolff/bezier/algebra"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
	"github.com/tdewolff/parse/v2/xml"
)

// ErrBadPath is returned for invalid SVG path data.
var ErrBadPath = errors.New("bad path")

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

type pathParser struct {
	path []byte
	i    int
}

func (p *pathParser) num() (*big.Rat, error) {
	p.i += skipCommaWhitespace(p.path[p.i:])
	f, n := strconv.ParseFloat(p.path[p.i:])
	if n == 0 {
		return nil, fmt.Errorf("%w: expected number at offset %d", ErrBadPath, p.i)
	}
	r, ok := new(big.Rat).SetString(string(p.path[p.i : p.i+n]))
	if !ok {
		r = algebra.Float(f)
	}
	p.i += n
	return r, nil
}

func (p *pathParser) point(x, y *big.Rat, relative bool) (algebra.RatPoint, error) {
	a, err := p.num()
	if err != nil {
		return algebra.RatPoint{}, err
	}
	b, err := p.num()
	if err != nil {
		return algebra.RatPoint{}, err
	}
	if relative {
		a.Add(a, x)
		b.Add(b, y)
	}
	return algebra.RatPoint{X: a, Y: b}, nil
}

// reflect returns the reflection of the control point cp through p.
func reflect(cp, p algebra.RatPoint) algebra.RatPoint {
	x := new(big.Rat).Add(p.X, p.X)
	y := new(big.Rat).Add(p.Y, p.Y)
	return algebra.RatPoint{X: x.Sub(x, cp.X), Y: y.Sub(y, cp.Y)}
}

// ParseSVGPath parses SVG path data into Bezier curves, one for each segment. Lines become linear curves, quadratic and cubic commands become quadratic and cubic curves. Numbers are converted exactly to rationals. Zero-length segments are skipped and arcs are not supported.
func ParseSVGPath(s string) ([]*Curve, error) {
	p := &pathParser{path: []byte(s)}
	curves := []*Curve{}

	var prevCmd byte
	start := algebra.RatPoint{X: new(big.Rat), Y: new(big.Rat)}
	pos := start
	cp := pos // last control point
	add := func(cps ...algebra.RatPoint) {
		end := cps[len(cps)-1]
		coincide := true
		for _, q := range cps {
			if !q.Equals(pos) {
				coincide = false
				break
			}
		}
		if !coincide {
			c, _ := NewCurve(append([]algebra.RatPoint{pos}, cps...)...)
			curves = append(curves, c)
		}
		pos = end
	}

	for p.i < len(p.path) {
		p.i += skipCommaWhitespace(p.path[p.i:])
		if len(p.path) <= p.i {
			break
		}
		cmd := prevCmd
		if p.path[p.i] >= 'A' {
			cmd = p.path[p.i]
			p.i++
		} else if prevCmd == 0 || prevCmd == 'Z' || prevCmd == 'z' {
			return nil, fmt.Errorf("%w: expected command at offset %d", ErrBadPath, p.i)
		}
		relative := 'a' <= cmd
		nextCP := pos
		switch cmd {
		case 'M', 'm':
			q, err := p.point(pos.X, pos.Y, relative)
			if err != nil {
				return nil, err
			}
			pos, start = q, q
			nextCP = q
			// subsequent pairs are implicit lineto commands
			cmd = 'L' + (cmd - 'M')
		case 'Z', 'z':
			add(start)
			nextCP = pos
		case 'L', 'l':
			q, err := p.point(pos.X, pos.Y, relative)
			if err != nil {
				return nil, err
			}
			add(q)
			nextCP = q
		case 'H', 'h':
			a, err := p.num()
			if err != nil {
				return nil, err
			}
			if relative {
				a.Add(a, pos.X)
			}
			q := algebra.RatPoint{X: a, Y: pos.Y}
			add(q)
			nextCP = q
		case 'V', 'v':
			b, err := p.num()
			if err != nil {
				return nil, err
			}
			if relative {
				b.Add(b, pos.Y)
			}
			q := algebra.RatPoint{X: pos.X, Y: b}
			add(q)
			nextCP = q
		case 'C', 'c', 'S', 's':
			var c1 algebra.RatPoint
			if cmd == 'C' || cmd == 'c' {
				var err error
				if c1, err = p.point(pos.X, pos.Y, relative); err != nil {
					return nil, err
				}
			} else if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				c1 = reflect(cp, pos)
			} else {
				c1 = pos
			}
			c2, err := p.point(pos.X, pos.Y, relative)
			if err != nil {
				return nil, err
			}
			q, err := p.point(pos.X, pos.Y, relative)
			if err != nil {
				return nil, err
			}
			add(c1, c2, q)
			nextCP = c2
		case 'Q', 'q', 'T', 't':
			var c1 algebra.RatPoint
			if cmd == 'Q' || cmd == 'q' {
				var err error
				if c1, err = p.point(pos.X, pos.Y, relative); err != nil {
					return nil, err
				}
			} else if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				c1 = reflect(cp, pos)
			} else {
				c1 = pos
			}
			q, err := p.point(pos.X, pos.Y, relative)
			if err != nil {
				return nil, err
			}
			add(c1, q)
			nextCP = c1
		case 'A', 'a':
			return nil, fmt.Errorf("%w: arcs are not supported at offset %d", ErrBadPath, p.i-1)
		default:
			return nil, fmt.Errorf("%w: unknown command '%c' at offset %d", ErrBadPath, cmd, p.i-1)
		}
		cp = nextCP
		prevCmd = cmd
	}
	return curves, nil
}

// MustParseSVGPath is like ParseSVGPath but panics on error.
func MustParseSVGPath(s string) []*Curve {
	curves, err := ParseSVGPath(s)
	if err != nil {
		panic(err)
	}
	return curves
}

// ReadSVG reads the curves of all path, line, polyline and polygon elements of an SVG document. Transformations and styles are ignored.
func ReadSVG(r io.Reader) ([]*Curve, error) {
	curves := []*Curve{}
	l := xml.NewLexer(parse.NewInput(r))
	for {
		tt, _ := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return nil, l.Err()
			}
			return curves, nil
		case xml.StartTagToken:
			tag := string(l.Text())
			attrs := map[string]string{}
			for {
				ttAttr, _ := l.Next()
				if ttAttr != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				if len(val) > 1 && (val[0] == '\'' || val[0] == '"') && val[0] == val[len(val)-1] {
					val = val[1 : len(val)-1]
				}
				attrs[string(l.Text())] = string(val)
			}

			var d string
			switch tag {
			case "path":
				d = attrs["d"]
			case "line":
				coord := func(name string) string {
					if v, ok := attrs[name]; ok {
						return v
					}
					return "0"
				}
				d = fmt.Sprintf("M%s %sL%s %s", coord("x1"), coord("y1"), coord("x2"), coord("y2"))
			case "polyline", "polygon":
				if points := strings.TrimSpace(attrs["points"]); points != "" {
					d = "M" + points
					if tag == "polygon" {
						d += "Z"
					}
				}
			}
			if d != "" {
				cs, err := ParseSVGPath(d)
				if err != nil {
					return nil, fmt.Errorf("%s element: %w", tag, err)
				}
				curves = append(curves, cs...)
			}
		}
	}
}
