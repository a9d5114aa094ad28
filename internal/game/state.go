package game

import (
	"fmt"

	"github.com/lukev/catan_server/internal/game/board"
	"github.com/lukev/catan_server/internal/models"
	"github.com/lukev/catan_server/internal/rng"
)

// Color is a player's seat color, assigned by join order.
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorWhite  Color = "white"
	ColorOrange Color = "orange"
)

// SeatColors is the fixed color assignment order.
var SeatColors = []Color{ColorRed, ColorBlue, ColorWhite, ColorOrange}

// Phase is the top-level game phase.
type Phase string

const (
	PhaseSetup    Phase = "SETUP"
	PhaseMain     Phase = "MAIN"
	PhaseGameOver Phase = "GAME_OVER"
)

// SetupSubPhase is the step within the SETUP phase.
type SetupSubPhase string

const (
	SetupPlaceSettlement SetupSubPhase = "PLACE_SETTLEMENT"
	SetupPlaceRoad       SetupSubPhase = "PLACE_ROAD"
)

// MainSubPhase is the step within the MAIN phase.
type MainSubPhase string

const (
	MainRollDice       MainSubPhase = "ROLL_DICE"
	MainDiscard        MainSubPhase = "DISCARD"
	MainMoveRobber     MainSubPhase = "MOVE_ROBBER"
	MainSteal          MainSubPhase = "STEAL"
	MainTradeBuildPlay MainSubPhase = "TRADE_BUILD_PLAY"
)

// TurnState is the discriminated record describing exactly where in the
// turn structure the game currently sits.
type TurnState struct {
	Phase Phase `json:"phase"`

	// SETUP fields.
	SetupOrder           []int         `json:"setupOrder,omitempty"`
	SetupStep            int           `json:"setupStep"`
	SetupSubPhase        SetupSubPhase `json:"setupSubPhase,omitempty"`
	LastSettlementVertex *board.Vertex `json:"lastSettlementVertex,omitempty"`

	// MAIN fields.
	MainSubPhase          MainSubPhase   `json:"mainSubPhase,omitempty"`
	DiceRoll              int            `json:"diceRoll"`
	DevCardPlayedThisTurn bool           `json:"devCardPlayedThisTurn"`
	DevCardBoughtThisTurn bool           `json:"devCardBoughtThisTurn"`
	PendingDiscards       map[string]int `json:"pendingDiscards,omitempty"`
	RoadBuildingRoadsLeft int            `json:"roadBuildingRoadsLeft"`
	MustStealFrom         []string       `json:"mustStealFrom,omitempty"`

	TurnNumber         int `json:"turnNumber"`
	CurrentPlayerIndex int `json:"currentPlayerIndex"`
}

// Player is one seated player's full, server-side record.
type Player struct {
	ID            string           `json:"id"`
	DisplayName   string           `json:"displayName"`
	Color         Color            `json:"color"`
	Resources     models.Resources `json:"resources"`
	DevCards      []models.DevCard `json:"devCards"`
	KnightsPlayed int              `json:"knightsPlayed"`

	HasLongestRoad    bool `json:"hasLongestRoad"`
	HasLargestArmy    bool `json:"hasLargestArmy"`
	LongestRoadLength int  `json:"longestRoadLength"`

	SettlementsRemaining int `json:"settlementsRemaining"`
	CitiesRemaining      int `json:"citiesRemaining"`
	RoadsRemaining       int `json:"roadsRemaining"`

	PortAccess map[board.PortType]bool `json:"-"`

	Connected bool `json:"connected"`
}

// PublicVP is the player's victory points visible to other players:
// buildings, longest road, and largest army, but not hidden VP cards.
func (p *Player) PublicVP() int {
	vp := p.buildingVP()
	if p.HasLongestRoad {
		vp += 2
	}
	if p.HasLargestArmy {
		vp += 2
	}
	return vp
}

// TotalVP is the player's full victory-point total, including hidden VP
// cards, used only for the current player's own win check.
func (p *Player) TotalVP() int {
	vp := p.PublicVP()
	for _, c := range p.DevCards {
		if c.Type == models.DevVictoryPoint {
			vp++
		}
	}
	return vp
}

func (p *Player) buildingVP() int {
	settlements := models.StartingSettlements - p.SettlementsRemaining
	cities := models.StartingCities - p.CitiesRemaining
	return settlements*1 + cities*2
}

// TradeStatus is a single responder's status on an open trade offer.
type TradeStatus string

const (
	TradePending  TradeStatus = "pending"
	TradeAccepted TradeStatus = "accepted"
	TradeRejected TradeStatus = "rejected"
)

// TradeOverallStatus is the offer's aggregate lifecycle status.
type TradeOverallStatus string

const (
	TradeOpen      TradeOverallStatus = "open"
	TradeExecuted  TradeOverallStatus = "executed"
	TradeCancelled TradeOverallStatus = "cancelled"
)

// TradeOffer is an open player-to-player trade proposal.
type TradeOffer struct {
	ID              string                 `json:"id"`
	ProposerID      string                 `json:"proposer"`
	Offering        models.Resources       `json:"offering"`
	Requesting      models.Resources       `json:"requesting"`
	ResponderStatus map[string]TradeStatus `json:"responderStatus"`
	Status          TradeOverallStatus     `json:"status"`
}

// GameState is the full authoritative state for one room's game. It is
// mutated in place by dispatch, which is acceptable per spec as long as
// rejected actions leave no trace and observers snapshot a projection
// before a subsequent mutation (see internal/game/serialize.go).
type GameState struct {
	GameID      string
	Board       *board.Board
	Players     []*Player
	TurnState   TurnState
	DevDeck     []models.DevCardType
	TradeOffers []*TradeOffer
	Winner      *string
	EventLog    []string
	Bank        models.Resources
	Seed        uint64

	nextTradeSeq int
}

// NewGameState creates a fresh game: generates the board, shuffles the
// dev-card deck, assigns colors and setup order, and puts the turn state
// into SETUP.PLACE_SETTLEMENT for the first player in the order. All
// randomness flows from seed, which is advanced deterministically by every
// draw and stored back on the returned state.
func NewGameState(gameID string, playerIDsAndNames [][2]string, seed uint64) (*GameState, error) {
	if len(playerIDsAndNames) < 3 || len(playerIDsAndNames) > 4 {
		return nil, fmt.Errorf("game requires 3-4 players, got %d", len(playerIDsAndNames))
	}

	b, seedAfterBoard := board.Generate(seed)

	players := make([]*Player, 0, len(playerIDsAndNames))
	for i, pair := range playerIDsAndNames {
		players = append(players, &Player{
			ID:                   pair[0],
			DisplayName:          pair[1],
			Color:                SeatColors[i],
			SettlementsRemaining: models.StartingSettlements,
			CitiesRemaining:      models.StartingCities,
			RoadsRemaining:       models.StartingRoads,
			PortAccess:           make(map[board.PortType]bool),
			Connected:            true,
		})
	}

	deck, seedAfterDeck := shuffleDevDeck(seedAfterBoard)

	setupOrder := snakeSetupOrder(len(players))

	gs := &GameState{
		GameID:  gameID,
		Board:   b,
		Players: players,
		DevDeck: deck,
		Bank: models.Resources{
			Wood: 19, Brick: 19, Sheep: 19, Wheat: 19, Ore: 19,
		},
		Seed: seedAfterDeck,
		TurnState: TurnState{
			Phase:         PhaseSetup,
			SetupOrder:    setupOrder,
			SetupStep:     0,
			SetupSubPhase: SetupPlaceSettlement,
			TurnNumber:    1,
		},
	}
	gs.TurnState.CurrentPlayerIndex = setupOrder[0]
	return gs, nil
}

// snakeSetupOrder returns the setup traversal 0,1,...,N-1,N-1,...,1,0.
func snakeSetupOrder(n int) []int {
	order := make([]int, 0, n*2)
	for i := 0; i < n; i++ {
		order = append(order, i)
	}
	for i := n - 1; i >= 0; i-- {
		order = append(order, i)
	}
	return order
}

func shuffleDevDeck(seed uint64) ([]models.DevCardType, uint64) {
	deck := make([]models.DevCardType, 0, 25)
	order := []models.DevCardType{
		models.DevKnight, models.DevVictoryPoint, models.DevRoadBuilding,
		models.DevYearOfPlenty, models.DevMonopoly,
	}
	for _, t := range order {
		for i := 0; i < models.DevCardDeckCounts[t]; i++ {
			deck = append(deck, t)
		}
	}
	cursor := rng.Cursor(seed)
	cursor = rng.Shuffle(cursor, len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck, uint64(cursor)
}

// GetPlayer returns the player with the given id.
func (gs *GameState) GetPlayer(id string) *Player {
	for _, p := range gs.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerIndex returns the index of the player with the given id, or -1.
func (gs *GameState) PlayerIndex(id string) int {
	for i, p := range gs.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// CurrentPlayer returns the player whose turn it is.
func (gs *GameState) CurrentPlayer() *Player {
	return gs.Players[gs.TurnState.CurrentPlayerIndex]
}

// Log appends a line to the append-only event log.
func (gs *GameState) Log(format string, args ...interface{}) {
	gs.EventLog = append(gs.EventLog, fmt.Sprintf(format, args...))
}

// drawSeed advances the state's seed and returns a value, keeping every
// random draw inside dispatch routed through the same cursor so replaying
// an identical (state, action) sequence is bit-identical.
func (gs *GameState) drawSeed() uint64 {
	cursor := rng.Cursor(gs.Seed)
	v, next := cursor.Next()
	gs.Seed = uint64(next)
	return v
}

func (gs *GameState) intn(n int) int {
	cursor := rng.Cursor(gs.Seed)
	v, next := cursor.Intn(n)
	gs.Seed = uint64(next)
	return v
}
