package board

import "github.com/lukev/catan_server/internal/models"

// Tile is a single hex's terrain and (if any) number token.
type Tile struct {
	Hex     Hex                `json:"hex"`
	Terrain models.TerrainType `json:"terrain"`
	Number  int                `json:"number"` // 0 for desert
}

// Board is the full board layout plus the mutable building/road/robber
// state that play changes.
type Board struct {
	Tiles     map[string]Tile              `json:"-"`
	Ports     []Port                        `json:"ports"`
	Buildings map[string]models.Building    `json:"buildings"` // keyed by Vertex.Key()
	Roads     map[string]models.Road        `json:"roads"`     // keyed by Edge.Key()
	RobberHex Hex                           `json:"robberHex"`
}

// TileList returns the board's tiles as a slice, in the fixed hex
// enumeration order (GetTables().AllHexes).
func (b *Board) TileList() []Tile {
	t := GetTables()
	out := make([]Tile, 0, len(t.AllHexes))
	for _, h := range t.AllHexes {
		out = append(out, b.Tiles[h.Key()])
	}
	return out
}

// TileAt returns the tile at a hex and whether it exists on the board.
func (b *Board) TileAt(h Hex) (Tile, bool) {
	tile, ok := b.Tiles[h.Key()]
	return tile, ok
}

// BuildingAt returns the building at a canonical vertex, if any.
func (b *Board) BuildingAt(v Vertex) (models.Building, bool) {
	bld, ok := b.Buildings[v.Key()]
	return bld, ok
}

// RoadAt returns the road at a canonical edge, if any.
func (b *Board) RoadAt(e Edge) (models.Road, bool) {
	r, ok := b.Roads[e.Key()]
	return r, ok
}

// AdjacentVertexHasBuilding reports whether any vertex adjacent to v
// (2-3 candidates) already carries a building — the distance rule.
func (b *Board) AdjacentVertexHasBuilding(v Vertex) bool {
	t := GetTables()
	for _, adj := range t.VertexAdjacentVertices[v.Key()] {
		if _, ok := b.Buildings[adj.Key()]; ok {
			return true
		}
	}
	return false
}

// VertexHexes returns the on-board hexes touching a vertex (1-3).
func (b *Board) VertexHexes(v Vertex) []Hex {
	return GetTables().VertexHexes[v.Key()]
}

// PortsAt returns every port whose edge has v as one of its two endpoints
// (empty if none).
func (b *Board) PortsAt(v Vertex) []Port {
	var out []Port
	for _, p := range b.Ports {
		ends := p.Edge.Vertices()
		if ends[0].Equals(v) || ends[1].Equals(v) {
			out = append(out, p)
		}
	}
	return out
}
