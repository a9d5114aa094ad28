package models

// TerrainType represents the terrain a hex carries. Every terrain but
// desert produces one resource type.
type TerrainType int

const (
	TerrainForest TerrainType = iota
	TerrainPasture
	TerrainFields
	TerrainHills
	TerrainMountains
	TerrainDesert
)

func (t TerrainType) String() string {
	switch t {
	case TerrainForest:
		return "Forest"
	case TerrainPasture:
		return "Pasture"
	case TerrainFields:
		return "Fields"
	case TerrainHills:
		return "Hills"
	case TerrainMountains:
		return "Mountains"
	case TerrainDesert:
		return "Desert"
	default:
		return "Unknown"
	}
}

// Resource returns the resource type this terrain produces, and false for
// desert (which produces nothing).
func (t TerrainType) Resource() (ResourceType, bool) {
	switch t {
	case TerrainForest:
		return ResourceWood, true
	case TerrainPasture:
		return ResourceSheep, true
	case TerrainFields:
		return ResourceWheat, true
	case TerrainHills:
		return ResourceBrick, true
	case TerrainMountains:
		return ResourceOre, true
	default:
		return "", false
	}
}

// TerrainCounts is the fixed distribution of terrain tiles across the 19
// hexes of the standard board.
var TerrainCounts = map[TerrainType]int{
	TerrainForest:    4,
	TerrainPasture:   4,
	TerrainFields:    4,
	TerrainHills:     3,
	TerrainMountains: 3,
	TerrainDesert:    1,
}

// NumberTokens is the fixed multiset of number tokens assigned to the 18
// non-desert hexes.
var NumberTokens = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}
