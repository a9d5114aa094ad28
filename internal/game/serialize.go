package game

import (
	"github.com/lukev/catan_server/internal/game/board"
	"github.com/lukev/catan_server/internal/models"
)

// BoardView is the wire-level board projection: the same for every
// recipient, since board state carries no hidden information.
type BoardView struct {
	Tiles     []board.Tile               `json:"tiles"`
	Ports     []board.Port               `json:"ports"`
	Buildings map[string]models.Building `json:"buildings"`
	Roads     map[string]models.Road     `json:"roads"`
	RobberHex board.Hex                  `json:"robberHex"`
}

// PlayerView is one player's per-recipient projection. Viewing your own
// seat fills Resources/DevCards/PortAccess; viewing another's only fills
// the count fields, per spec's hidden-information boundary.
type PlayerView struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"displayName"`
	Color         Color    `json:"color"`
	KnightsPlayed int      `json:"knightsPlayed"`
	PublicVP      int      `json:"publicVp"`
	HasLongestRoad bool    `json:"hasLongestRoad"`
	HasLargestArmy bool    `json:"hasLargestArmy"`
	LongestRoadLength int  `json:"longestRoadLength"`
	Connected     bool     `json:"connected"`

	ResourceCount int `json:"resourceCount"`
	DevCardCount  int `json:"devCardCount"`

	// Present only on the viewer's own seat.
	Resources  *models.Resources       `json:"resources,omitempty"`
	DevCards   []models.DevCard        `json:"devCards,omitempty"`
	PortAccess []board.PortType        `json:"portAccess,omitempty"`
}

// StateView is the full per-recipient projection of a GameState, the only
// shape ever sent over the wire.
type StateView struct {
	GameID      string       `json:"gameId"`
	Revision    int          `json:"revision"`
	Board       BoardView    `json:"board"`
	TurnState   TurnState    `json:"turnState"`
	Players     []PlayerView `json:"players"`
	Bank        models.Resources `json:"bank"`
	DevDeckCount int         `json:"devDeckCount"`
	TradeOffers []*TradeOffer `json:"tradeOffers"`
	Winner      *string      `json:"winner"`
	EventLog    []string     `json:"eventLog"`
}

// ProjectState builds the state view a specific viewer is allowed to see.
// It is total and side-effect-free: the only place hidden fields are
// dropped, per the coordinate/session split in spec §4.3/§9.
func ProjectState(gs *GameState, revision int, viewerID string) *StateView {
	view := &StateView{
		GameID: gs.GameID,
		Revision: revision,
		Board: BoardView{
			Tiles:     gs.Board.TileList(),
			Ports:     gs.Board.Ports,
			Buildings: gs.Board.Buildings,
			Roads:     gs.Board.Roads,
			RobberHex: gs.Board.RobberHex,
		},
		TurnState:    gs.TurnState,
		Bank:         gs.Bank,
		DevDeckCount: len(gs.DevDeck),
		TradeOffers:  gs.TradeOffers,
		Winner:       gs.Winner,
		EventLog:     gs.EventLog,
	}

	for _, p := range gs.Players {
		pv := PlayerView{
			ID:                p.ID,
			DisplayName:       p.DisplayName,
			Color:             p.Color,
			KnightsPlayed:     p.KnightsPlayed,
			PublicVP:          p.PublicVP(),
			HasLongestRoad:    p.HasLongestRoad,
			HasLargestArmy:    p.HasLargestArmy,
			LongestRoadLength: p.LongestRoadLength,
			Connected:         p.Connected,
			ResourceCount:     p.Resources.Total(),
			DevCardCount:      len(p.DevCards),
		}
		if p.ID == viewerID {
			resources := p.Resources
			pv.Resources = &resources
			pv.DevCards = p.DevCards
			ports := make([]board.PortType, 0, len(p.PortAccess))
			for t, has := range p.PortAccess {
				if has {
					ports = append(ports, t)
				}
			}
			pv.PortAccess = ports
		}
		view.Players = append(view.Players, pv)
	}

	return view
}
