package board

import (
	"encoding/json"
	"fmt"
)

// EdgeDir is the canonical edge direction: NE, E, or SE. A hex's SW, W, and
// NW sides are rewritten to the NE, E, or SE side of the appropriate
// neighbor before use.
type EdgeDir string

const (
	EdgeNE EdgeDir = "NE"
	EdgeE  EdgeDir = "E"
	EdgeSE EdgeDir = "SE"
)

// Edge is a canonical board side.
type Edge struct {
	Hex Hex
	Dir EdgeDir
}

func edgeDirFor(d Direction) EdgeDir {
	switch d {
	case DirNE:
		return EdgeNE
	case DirE:
		return EdgeE
	case DirSE:
		return EdgeSE
	default:
		panic("board: direction has no canonical edge dir")
	}
}

// NewEdgeFromDirection builds the canonical edge for hex h's side in
// direction d, rewriting SW/W/NW sides to the NE/E/SE side of the
// neighbor in that direction, per the coordinate core's canonicalization
// rule ("a SW edge of hex H is the NE edge of hex H translated one unit
// SW").
func NewEdgeFromDirection(h Hex, d Direction) Edge {
	switch d {
	case DirNE, DirE, DirSE:
		return Edge{Hex: h, Dir: edgeDirFor(d)}
	case DirSW:
		return Edge{Hex: h.Neighbor(DirSW), Dir: EdgeNE}
	case DirW:
		return Edge{Hex: h.Neighbor(DirW), Dir: EdgeE}
	case DirNW:
		return Edge{Hex: h.Neighbor(DirNW), Dir: EdgeSE}
	default:
		panic("board: invalid edge direction")
	}
}

// Key returns the canonical map-key serialization, "q,r,s,dir".
func (e Edge) Key() string {
	return fmt.Sprintf("%d,%d,%d,%s", e.Hex.Q, e.Hex.R, e.Hex.S, e.Dir)
}

func (e Edge) String() string { return e.Key() }

type edgeWire struct {
	Q   int     `json:"q"`
	R   int     `json:"r"`
	S   int     `json:"s"`
	Dir EdgeDir `json:"dir"`
}

// MarshalJSON renders the wire format {q,r,s,dir}.
func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal(edgeWire{Q: e.Hex.Q, R: e.Hex.R, S: e.Hex.S, Dir: e.Dir})
}

// UnmarshalJSON parses the wire format {q,r,s,dir}. Dir must already be
// one of the canonical NE/E/SE forms; SW/W/NW coordinates sent by a
// client are rejected rather than silently rewritten, so a caller that
// wants the rewrite must go through NewEdgeFromDirection explicitly.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var w edgeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Dir != EdgeNE && w.Dir != EdgeE && w.Dir != EdgeSE {
		return fmt.Errorf("board: invalid edge direction %q", w.Dir)
	}
	e.Hex = Hex{Q: w.Q, R: w.R, S: w.S}
	e.Dir = w.Dir
	return nil
}

// Equals checks if two edges name the same canonical side.
func (e Edge) Equals(other Edge) bool {
	return e.Hex.Equals(other.Hex) && e.Dir == other.Dir
}

// Vertices returns the exactly-2 vertices at the ends of this edge.
func (e Edge) Vertices() [2]Vertex {
	switch e.Dir {
	case EdgeNE:
		return [2]Vertex{NewVertex(e.Hex, VertexN), NewVertex(e.Hex.Neighbor(DirNE), VertexS)}
	case EdgeE:
		return [2]Vertex{NewVertex(e.Hex, VertexN), NewVertex(e.Hex.Neighbor(DirE), VertexS)}
	default: // EdgeSE
		return [2]Vertex{NewVertex(e.Hex.Neighbor(DirSW), VertexN), NewVertex(e.Hex.Neighbor(DirE), VertexS)}
	}
}

// HexEdges returns the 6 canonical edges bordering a hex, in direction
// order (E, NE, NW, W, SW, SE neighbor sides).
func HexEdges(h Hex) [6]Edge {
	var out [6]Edge
	for i := 0; i < 6; i++ {
		out[i] = NewEdgeFromDirection(h, Direction(i))
	}
	return out
}
