package models

// ResourceType is one of the five tradeable resources. It is string-typed
// so it serializes directly as wire/JSON keys (bundle maps, trade offers)
// without a separate marshaling layer.
type ResourceType string

const (
	ResourceWood  ResourceType = "wood"
	ResourceBrick ResourceType = "brick"
	ResourceSheep ResourceType = "sheep"
	ResourceWheat ResourceType = "wheat"
	ResourceOre   ResourceType = "ore"
)

// ResourceTypes enumerates the five resources in a fixed, stable order,
// used anywhere iteration order must be deterministic (bank-scarcity
// checks, production, serialization).
var ResourceTypes = []ResourceType{ResourceWood, ResourceBrick, ResourceSheep, ResourceWheat, ResourceOre}

func (r ResourceType) Valid() bool {
	switch r {
	case ResourceWood, ResourceBrick, ResourceSheep, ResourceWheat, ResourceOre:
		return true
	default:
		return false
	}
}
