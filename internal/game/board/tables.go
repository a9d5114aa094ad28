package board

import "sync"

// BoardRadius is the hex-distance from the center hex to the outermost
// ring; a radius of 2 gives the standard 19-hex Catan layout.
const BoardRadius = 2

// Tables holds the precomputed, read-only coordinate data for the fixed
// 19-hex board shape: every hex, every canonical vertex and edge, and the
// adjacency maps between them. It is a function of the board shape alone,
// not of any room's state, so it is built once per process and shared.
type Tables struct {
	AllHexes    []Hex
	AllVertices []Vertex
	AllEdges    []Edge

	VertexHexes            map[string][]Hex
	VertexAdjacentEdges    map[string][]Edge
	VertexAdjacentVertices map[string][]Vertex
	HexVertexList          map[string][6]Vertex
	HexEdgeList            map[string][6]Edge
	EdgeVertexPair         map[string][2]Vertex

	hexSet map[string]bool
}

var (
	tablesOnce  sync.Once
	tablesValue *Tables
)

// GetTables returns the process-lifetime coordinate tables, building them
// on first use. Safe for concurrent use; idempotent.
func GetTables() *Tables {
	tablesOnce.Do(func() {
		tablesValue = buildTables()
	})
	return tablesValue
}

func buildTables() *Tables {
	t := &Tables{
		VertexHexes:            make(map[string][]Hex),
		VertexAdjacentEdges:    make(map[string][]Edge),
		VertexAdjacentVertices: make(map[string][]Vertex),
		HexVertexList:          make(map[string][6]Vertex),
		HexEdgeList:            make(map[string][6]Edge),
		EdgeVertexPair:         make(map[string][2]Vertex),
		hexSet:                 make(map[string]bool),
	}

	center := Hex{}
	t.AllHexes = center.SpiralRange(BoardRadius)
	for _, h := range t.AllHexes {
		t.hexSet[h.Key()] = true
	}

	seenVertex := make(map[string]Vertex)
	seenEdge := make(map[string]Edge)

	for _, h := range t.AllHexes {
		vs := HexVertices(h)
		t.HexVertexList[h.Key()] = vs
		for _, v := range vs {
			seenVertex[v.Key()] = v
		}

		es := HexEdges(h)
		t.HexEdgeList[h.Key()] = es
		for _, e := range es {
			seenEdge[e.Key()] = e
		}
	}

	for key, v := range seenVertex {
		t.AllVertices = append(t.AllVertices, v)
		t.VertexHexes[key] = t.onBoardHexes(v.Hexes())
	}

	for key, e := range seenEdge {
		t.AllEdges = append(t.AllEdges, e)
		t.EdgeVertexPair[key] = e.Vertices()
	}

	// vertex -> adjacent edges / vertices, derived by scanning every edge
	// once and recording both of its endpoints.
	adjEdges := make(map[string][]Edge)
	adjVerts := make(map[string][]Vertex)
	for _, e := range t.AllEdges {
		ends := e.Vertices()
		for i, end := range ends {
			other := ends[1-i]
			k := end.Key()
			adjEdges[k] = append(adjEdges[k], e)
			adjVerts[k] = append(adjVerts[k], other)
		}
	}
	t.VertexAdjacentEdges = adjEdges
	t.VertexAdjacentVertices = adjVerts

	return t
}

// onBoardHexes filters a candidate hex list down to those present on the
// fixed 19-hex board.
func (t *Tables) onBoardHexes(hexes []Hex) []Hex {
	out := make([]Hex, 0, len(hexes))
	for _, h := range hexes {
		if t.hexSet[h.Key()] {
			out = append(out, h)
		}
	}
	return out
}

// IsOnBoard reports whether a hex is one of the 19 board hexes.
func (t *Tables) IsOnBoard(h Hex) bool {
	return t.hexSet[h.Key()]
}
