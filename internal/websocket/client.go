// Package websocket handles websocket connections and messaging.
package websocket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lukev/catan_server/internal/game"
	"github.com/lukev/catan_server/internal/game/board"
	"github.com/lukev/catan_server/internal/lobby"
	"github.com/lukev/catan_server/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

// Client is a middleman between the websocket connection and the hub. A
// client may be seated in at most one room at a time, per spec's "single
// active session" session-host model.
type Client struct {
	hub *Hub

	conn *websocket.Conn
	send chan []byte
	id   string

	deps ServerDeps

	roomID   string
	playerID string
}

type inboundMsg struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type createRoomPayload struct {
	PlayerName string `json:"playerName"`
}

type joinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type reconnectPayload struct {
	Token string `json:"token"`
}

type chatPayload struct {
	Message string `json:"message"`
}

type gameActionPayload struct {
	ActionID         string          `json:"actionId,omitempty"`
	ExpectedRevision *int            `json:"expectedRevision,omitempty"`
	Action           json.RawMessage `json:"action"`
}

type actionEnvelope struct {
	Type string `json:"type"`
}

func (c *Client) readPump() {
	defer func() {
		c.handleDisconnect()
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.WithError(err).Warn("unexpected websocket close")
			}
			break
		}
		message = bytes.TrimSpace(bytes.ReplaceAll(message, newline, space))

		var env inboundMsg
		if err := json.Unmarshal(message, &env); err != nil {
			c.hub.log.WithError(err).Warn("invalid inbound frame")
			c.sendErrorMsg("Invalid message format")
			continue
		}

		c.handleInboundMessage(env)
	}
}

func (c *Client) handleInboundMessage(env inboundMsg) {
	switch env.Type {
	case "CREATE_ROOM":
		c.handleCreateRoom(env.Payload)
	case "JOIN_ROOM":
		c.handleJoinRoom(env.Payload)
	case "LEAVE_ROOM":
		c.handleLeaveRoom()
	case "START_GAME":
		c.handleStartGame()
	case "LIST_ROOMS":
		c.handleListRooms()
	case "RECONNECT":
		c.handleReconnect(env.Payload)
	case "GAME_ACTION":
		c.handleGameAction(env.Payload)
	case "CHAT":
		c.handleChat(env.Payload)
	default:
		c.sendErrorMsg("Unknown message type")
	}
}

func (c *Client) handleCreateRoom(payload json.RawMessage) {
	var p createRoomPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.PlayerName == "" {
		c.sendErrorMsg("Invalid message format")
		return
	}

	room, seat := c.deps.Lobby.CreateRoom(newPlayerID(), p.PlayerName)
	c.bindSeat(room.ID, seat.PlayerID)
	c.hub.JoinGame(c, room.ID)

	c.sendTyped("ROOM_CREATED", map[string]any{
		"roomId":   room.ID,
		"playerId": seat.PlayerID,
		"token":    seat.ReconnectToken,
	})
	c.broadcastRoomUpdate(room)
}

func (c *Client) handleJoinRoom(payload json.RawMessage) {
	var p joinRoomPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.RoomID == "" || p.PlayerName == "" {
		c.sendErrorMsg("Invalid message format")
		return
	}

	playerID := newPlayerID()
	room, seat, err := c.deps.Lobby.JoinRoom(p.RoomID, playerID, p.PlayerName)
	if err != nil {
		c.sendErrorMsg(fmt.Sprintf("Failed to join room: %v", err))
		return
	}

	c.bindSeat(room.ID, seat.PlayerID)
	c.hub.JoinGame(c, room.ID)

	c.sendTyped("ROOM_JOINED", map[string]any{
		"playerId": seat.PlayerID,
		"token":    seat.ReconnectToken,
		"roomInfo": roomInfoView(room),
	})
	c.broadcastRoomUpdate(room)
}

func (c *Client) handleLeaveRoom() {
	if c.roomID == "" {
		c.sendErrorMsg("Not in a room")
		return
	}
	roomID, playerID := c.roomID, c.playerID
	if err := c.deps.Lobby.LeaveRoom(roomID, playerID); err != nil {
		c.sendErrorMsg(fmt.Sprintf("Failed to leave room: %v", err))
		return
	}
	c.hub.LeaveGame(c, roomID)
	c.roomID, c.playerID = "", ""
	c.sendTyped("ROOM_LEFT", nil)

	if room, ok := c.deps.Lobby.GetRoom(roomID); ok {
		c.broadcastRoomUpdate(room)
	}
}

func (c *Client) handleStartGame() {
	if c.roomID == "" {
		c.sendErrorMsg("Not in a room")
		return
	}
	gs, err := c.deps.Lobby.StartGame(c.roomID, c.playerID, newBoardSeed())
	if err != nil {
		c.sendErrorMsg(err.Error())
		return
	}

	room, _ := c.deps.Lobby.GetRoom(c.roomID)
	revision, _ := c.deps.Games.GetRevision(c.roomID)
	for _, seat := range room.Seats {
		c.hub.sendProjectionTo(seat.PlayerID, "GAME_STARTED", gs, revision)
	}
}

func (c *Client) handleListRooms() {
	rooms := c.deps.Lobby.ListRooms()
	views := make([]map[string]any, 0, len(rooms))
	for _, r := range rooms {
		if r.Status == lobby.StatusWaiting {
			views = append(views, roomInfoView(r))
		}
	}
	c.sendTyped("ROOM_LIST", map[string]any{"rooms": views})
}

func (c *Client) handleReconnect(payload json.RawMessage) {
	var p reconnectPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.Token == "" {
		c.sendErrorMsg("Reconnection failed")
		return
	}

	room, seat, ok := c.deps.Lobby.FindByToken(p.Token)
	if !ok {
		c.sendErrorMsg("Reconnection failed")
		return
	}

	c.bindSeat(room.ID, seat.PlayerID)
	c.hub.JoinGame(c, room.ID)
	c.deps.Lobby.SetConnected(room.ID, seat.PlayerID, true)

	if gs, ok := c.deps.Games.GetGame(room.ID); ok {
		if player := gs.GetPlayer(seat.PlayerID); player != nil {
			player.Connected = true
		}
		revision, _ := c.deps.Games.GetRevision(room.ID)
		c.sendTyped("RECONNECTED", game.ProjectState(gs, revision, seat.PlayerID))
		c.hub.broadcastEventExcept(room.ID, seat.PlayerID, "PLAYER_RECONNECTED", map[string]any{"playerId": seat.PlayerID})
		return
	}

	c.sendTyped("ROOM_JOINED", map[string]any{
		"playerId": seat.PlayerID,
		"token":    seat.ReconnectToken,
		"roomInfo": roomInfoView(room),
	})
}

func (c *Client) handleGameAction(payload json.RawMessage) {
	if c.roomID == "" {
		c.sendErrorMsg("Not in a room")
		return
	}

	var p gameActionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.sendErrorMsg("Invalid message format")
		return
	}

	action, err := parseAction(p.Action, c.playerID)
	if err != nil {
		c.sendErrorMsg("Invalid message format")
		return
	}

	meta := game.ActionMeta{ActionID: p.ActionID, SeatID: c.playerID, ExpectedRevision: -1}
	if p.ExpectedRevision != nil {
		meta.ExpectedRevision = *p.ExpectedRevision
	}

	result, err := c.deps.Games.ExecuteActionWithMeta(c.roomID, action, meta)
	if err != nil {
		if rej, ok := err.(*game.RejectionError); ok {
			c.sendTyped("ACTION_REJECTED", map[string]any{
				"action": p.Action,
				"reason": rej.Reason,
			})
			return
		}
		c.hub.log.WithError(err).WithField("room_id", c.roomID).Warn("game action error")
		c.sendErrorMsg(err.Error())
		return
	}
	if result.Duplicate {
		return
	}

	gs, ok := c.deps.Games.GetGame(c.roomID)
	if !ok {
		return
	}
	c.hub.broadcastStateUpdate(c.roomID, gs, result.Revision, c.deps.Lobby)
}

func (c *Client) handleChat(payload json.RawMessage) {
	if c.roomID == "" {
		c.sendErrorMsg("Not in a room")
		return
	}
	var p chatPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.Message == "" {
		c.sendErrorMsg("Invalid message format")
		return
	}
	room, ok := c.deps.Lobby.GetRoom(c.roomID)
	if !ok {
		return
	}
	seat := room.SeatByPlayerID(c.playerID)
	displayName := ""
	if seat != nil {
		displayName = seat.DisplayName
	}
	c.hub.broadcastEvent(c.roomID, "CHAT_MESSAGE", map[string]any{
		"playerId":   c.playerID,
		"playerName": displayName,
		"message":    p.Message,
	})
}

func (c *Client) handleDisconnect() {
	if c.roomID == "" {
		return
	}
	c.deps.Lobby.SetConnected(c.roomID, c.playerID, false)
	if gs, ok := c.deps.Games.GetGame(c.roomID); ok {
		if player := gs.GetPlayer(c.playerID); player != nil {
			player.Connected = false
		}
		revision, _ := c.deps.Games.GetRevision(c.roomID)
		c.hub.broadcastStateUpdate(c.roomID, gs, revision, c.deps.Lobby)
	}
	c.hub.broadcastEvent(c.roomID, "PLAYER_DISCONNECTED", map[string]any{"playerId": c.playerID})
}

func (c *Client) bindSeat(roomID, playerID string) {
	c.roomID = roomID
	c.playerID = playerID
}

func (c *Client) sendTyped(msgType string, payload any) {
	msg, err := json.Marshal(map[string]any{"type": msgType, "payload": payload})
	if err != nil {
		c.hub.log.WithError(err).WithField("msg_type", msgType).Warn("failed to marshal outbound message")
		return
	}
	c.send <- msg
}

func (c *Client) sendErrorMsg(message string) {
	c.sendTyped("ERROR", map[string]any{"message": message})
}

func (c *Client) broadcastRoomUpdate(room *lobby.Room) {
	c.hub.broadcastEvent(room.ID, "ROOM_UPDATE", roomInfoView(room))
}

func roomInfoView(room *lobby.Room) map[string]any {
	seats := make([]map[string]any, 0, len(room.Seats))
	for _, s := range room.Seats {
		seats = append(seats, map[string]any{
			"playerId":    s.PlayerID,
			"displayName": s.DisplayName,
			"color":       s.Color,
			"connected":   s.Connected,
		})
	}
	return map[string]any{
		"roomId":       room.ID,
		"hostPlayerId": room.HostPlayerID,
		"status":       room.Status,
		"seats":        seats,
	}
}

// parseAction decodes a GAME_ACTION's action union by its discriminating
// "type" field into the concrete game.Action it names.
func parseAction(raw json.RawMessage, playerID string) (game.Action, error) {
	var env actionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	base := game.BaseAction{PlayerID: playerID}

	switch env.Type {
	case "ROLL_DICE":
		base.Type = game.ActionRollDice
		return &game.RollDiceAction{BaseAction: base}, nil

	case "PLACE_SETTLEMENT":
		var p struct {
			Vertex board.Vertex `json:"vertex"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionPlaceSettlement
		return &game.PlaceSettlementAction{BaseAction: base, Vertex: p.Vertex}, nil

	case "PLACE_ROAD":
		var p struct {
			Edge board.Edge `json:"edge"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionPlaceRoad
		return &game.PlaceRoadAction{BaseAction: base, Edge: p.Edge}, nil

	case "PLACE_CITY":
		var p struct {
			Vertex board.Vertex `json:"vertex"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionPlaceCity
		return &game.PlaceCityAction{BaseAction: base, Vertex: p.Vertex}, nil

	case "BUY_DEV_CARD":
		base.Type = game.ActionBuyDevCard
		return &game.BuyDevCardAction{BaseAction: base}, nil

	case "PLAY_KNIGHT":
		var p struct {
			RobberHex board.Hex `json:"robberHex"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionPlayKnight
		return &game.PlayKnightAction{BaseAction: base, RobberHex: p.RobberHex}, nil

	case "PLAY_ROAD_BUILDING":
		base.Type = game.ActionPlayRoadBuilding
		return &game.PlayRoadBuildingAction{BaseAction: base}, nil

	case "PLAY_YEAR_OF_PLENTY":
		var p struct {
			Resources [2]models.ResourceType `json:"resources"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionPlayYearOfPlenty
		return &game.PlayYearOfPlentyAction{BaseAction: base, Resources: p.Resources}, nil

	case "PLAY_MONOPOLY":
		var p struct {
			Resource models.ResourceType `json:"resource"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionPlayMonopoly
		return &game.PlayMonopolyAction{BaseAction: base, Resource: p.Resource}, nil

	case "DISCARD_RESOURCES":
		var p struct {
			Resources models.Resources `json:"resources"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionDiscardResources
		return &game.DiscardResourcesAction{BaseAction: base, Resources: p.Resources}, nil

	case "MOVE_ROBBER":
		var p struct {
			Hex board.Hex `json:"hex"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionMoveRobber
		return &game.MoveRobberAction{BaseAction: base, Hex: p.Hex}, nil

	case "STEAL":
		var p struct {
			TargetPlayerID string `json:"targetPlayerId"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionSteal
		return &game.StealAction{BaseAction: base, TargetPlayerID: p.TargetPlayerID}, nil

	case "PROPOSE_TRADE":
		var p struct {
			Offering   models.Resources `json:"offering"`
			Requesting models.Resources `json:"requesting"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionProposeTrade
		return &game.ProposeTradeAction{BaseAction: base, Offering: p.Offering, Requesting: p.Requesting}, nil

	case "RESPOND_TO_TRADE":
		var p struct {
			TradeID string `json:"tradeId"`
			Accept  bool   `json:"accept"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionRespondToTrade
		return &game.RespondToTradeAction{BaseAction: base, TradeID: p.TradeID, Accept: p.Accept}, nil

	case "CONFIRM_TRADE":
		var p struct {
			TradeID      string `json:"tradeId"`
			WithPlayerID string `json:"withPlayerId"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionConfirmTrade
		return &game.ConfirmTradeAction{BaseAction: base, TradeID: p.TradeID, WithPlayerID: p.WithPlayerID}, nil

	case "CANCEL_TRADE":
		var p struct {
			TradeID string `json:"tradeId"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionCancelTrade
		return &game.CancelTradeAction{BaseAction: base, TradeID: p.TradeID}, nil

	case "BANK_TRADE":
		var p struct {
			Giving    models.ResourceType `json:"giving"`
			Receiving models.ResourceType `json:"receiving"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base.Type = game.ActionBankTrade
		return &game.BankTradeAction{BaseAction: base, Giving: p.Giving, Receiving: p.Receiving}, nil

	case "END_TURN":
		base.Type = game.ActionEndTurn
		return &game.EndTurnAction{BaseAction: base}, nil

	default:
		return nil, fmt.Errorf("unknown action type %q", env.Type)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			if err := c.handleWriteMessage(message, ok); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.handlePing(); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleWriteMessage(message []byte, ok bool) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if !ok {
		_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
		return fmt.Errorf("channel closed")
	}

	w, err := c.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		return err
	}

	return w.Close()
}

func (c *Client) handlePing() error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}
