package board

import "testing"

func TestCanonicalizeIsIdempotent(t *testing.T) {
	v := NewVertex(Hex{1, -1, 0}, VertexN)
	once := Canonicalize(v)
	twice := Canonicalize(once)
	if !once.Equals(twice) {
		t.Fatalf("canonicalizing twice changed the vertex: %v vs %v", once, twice)
	}
}

func TestVertexKeyRoundTrips(t *testing.T) {
	v := NewVertex(Hex{-1, 0, 1}, VertexS)
	key := v.Key()
	if key != "-1,0,1,S" {
		t.Fatalf("unexpected key %q", key)
	}
}

func TestEdgeRewritesNonCanonicalDirections(t *testing.T) {
	h := Hex{0, 0, 0}
	sw := NewEdgeFromDirection(h, DirSW)
	want := Edge{Hex: h.Neighbor(DirSW), Dir: EdgeNE}
	if !sw.Equals(want) {
		t.Fatalf("SW edge of %v = %v, want %v", h, sw, want)
	}
}

func TestBoardHas54VerticesAnd72Edges(t *testing.T) {
	tbl := GetTables()
	if len(tbl.AllVertices) != 54 {
		t.Errorf("AllVertices = %d, want 54", len(tbl.AllVertices))
	}
	if len(tbl.AllEdges) != 72 {
		t.Errorf("AllEdges = %d, want 72", len(tbl.AllEdges))
	}
}

func TestVertexHexesCountIsOneToThree(t *testing.T) {
	tbl := GetTables()
	for _, v := range tbl.AllVertices {
		n := len(tbl.VertexHexes[v.Key()])
		if n < 1 || n > 3 {
			t.Errorf("vertex %v touches %d hexes, want 1-3", v, n)
		}
	}
}

func TestVertexAdjacentVerticesCountIsTwoToThree(t *testing.T) {
	tbl := GetTables()
	for _, v := range tbl.AllVertices {
		n := len(tbl.VertexAdjacentVertices[v.Key()])
		if n < 2 || n > 3 {
			t.Errorf("vertex %v has %d adjacent vertices, want 2-3", v, n)
		}
	}
}

func TestEdgeVerticesAreExactlyTwo(t *testing.T) {
	tbl := GetTables()
	for _, e := range tbl.AllEdges {
		vs := e.Vertices()
		if vs[0].Equals(vs[1]) {
			t.Errorf("edge %v has coincident endpoints", e)
		}
	}
}

func TestHexVerticesAndEdgesCountSix(t *testing.T) {
	tbl := GetTables()
	for _, h := range tbl.AllHexes {
		if len(tbl.HexVertexList[h.Key()]) != 6 {
			t.Errorf("hex %v has %d vertices, want 6", h, len(tbl.HexVertexList[h.Key()]))
		}
		if len(tbl.HexEdgeList[h.Key()]) != 6 {
			t.Errorf("hex %v has %d edges, want 6", h, len(tbl.HexEdgeList[h.Key()]))
		}
	}
}

func TestGetTablesIsCachedAcrossCalls(t *testing.T) {
	a := GetTables()
	b := GetTables()
	if a != b {
		t.Fatal("GetTables() returned different instances; expected a process-lifetime singleton")
	}
}
