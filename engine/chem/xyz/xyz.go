// Package xyz reads the XYZ chemical file format.
//
// A file is a sequence of frames. Each frame is an atom count line, a free
// comment line and one "symbol x y z" line per atom. The symbol may also be
// an atomic number. Extra columns after z are ignored.
package xyz

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hubastard/atomview/engine/chem/elements"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("xyz: syntax error")

// Structure is one frame: positions (3 floats per atom) and element ids in
// the same order.
type Structure struct {
	Comment   string
	Positions []float64
	Numbers   []int
}

// Len returns the number of atoms.
func (s Structure) Len() int { return len(s.Numbers) }

// Position returns the i-th atom position.
func (s Structure) Position(i int) r3.Vec {
	return r3.Vec{X: s.Positions[3*i], Y: s.Positions[3*i+1], Z: s.Positions[3*i+2]}
}

// Vecs returns every position as a vector.
func (s Structure) Vecs() []r3.Vec {
	out := make([]r3.Vec, s.Len())
	for i := range out {
		out[i] = s.Position(i)
	}
	return out
}

// Parse reads every frame in text.
func Parse(text string) ([]Structure, error) {
	var out []Structure
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		line++
		return sc.Text(), true
	}

	for {
		head, ok := next()
		if !ok {
			break
		}
		head = strings.TrimSpace(head)
		if head == "" {
			continue
		}
		n, err := strconv.Atoi(head)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: line %d: bad atom count %q", ErrSyntax, line, head)
		}
		// Every atom row takes at least 8 bytes ("H 0 0 0\n"), so a count
		// the text cannot hold is rejected before allocating.
		if n > len(text)/8+1 {
			return nil, fmt.Errorf("%w: line %d: atom count %d exceeds input", ErrSyntax, line, n)
		}
		comment, ok := next()
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing comment line", ErrSyntax, line)
		}
		st := Structure{
			Comment:   strings.TrimSpace(comment),
			Positions: make([]float64, 0, 3*n),
			Numbers:   make([]int, 0, n),
		}
		for i := 0; i < n; i++ {
			row, ok := next()
			if !ok {
				return nil, fmt.Errorf("%w: frame %d: expected %d atoms, got %d", ErrSyntax, len(out)+1, n, i)
			}
			num, pos, err := parseAtom(row)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, line, err)
			}
			st.Numbers = append(st.Numbers, num)
			st.Positions = append(st.Positions, pos[0], pos[1], pos[2])
		}
		out = append(out, st)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("xyz: read: %w", err)
	}
	return out, nil
}

func parseAtom(row string) (int, [3]float64, error) {
	var pos [3]float64
	f := strings.Fields(row)
	if len(f) < 4 {
		return 0, pos, fmt.Errorf("want \"symbol x y z\", got %q", row)
	}
	num, err := atomicNumber(f[0])
	if err != nil {
		return 0, pos, err
	}
	for k := 0; k < 3; k++ {
		v, err := strconv.ParseFloat(f[k+1], 64)
		if err != nil {
			return 0, pos, fmt.Errorf("bad coordinate %q", f[k+1])
		}
		pos[k] = v
	}
	return num, pos, nil
}

func atomicNumber(tok string) (int, error) {
	if n, err := strconv.Atoi(tok); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative atomic number %d", n)
		}
		return n, nil
	}
	if n, ok := elements.BySymbol(tok); ok {
		return n, nil
	}
	return 0, fmt.Errorf("unknown element %q", tok)
}
