package network

import "encoding/json"

// Message types - Client → Server
const (
	MsgTypeJoin    = "join"
	MsgTypeLeave   = "leave"
	MsgTypePointer = "pointer"
	MsgTypeEquip   = "equip"
	MsgTypeUnequip = "unequip"
	MsgTypePickup  = "pickup"
	MsgTypeDiscard = "discard"
	MsgTypeState   = "state"
	MsgTypePing    = "ping"
)

// Message types - Server → Client
const (
	MsgTypeWelcome       = "welcome"
	MsgTypeStateSnapshot = "state"
	MsgTypeItemPlaced    = "item_placed"
	MsgTypeItemRemoved   = "item_removed"
	MsgTypeEquipped      = "equipped"
	MsgTypeUnequipped    = "unequipped"
	MsgTypeDragValidity  = "drag_validity"
	MsgTypeDragResult    = "drag_result"
	MsgTypeShutdown      = "shutdown"
	MsgTypeError         = "error"
	MsgTypePong          = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// PointerPayload is one frame of pointer input in screen coordinates
type PointerPayload struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Down bool    `json:"down"`
}

// EquipPayload asks to equip a held item by instance id
type EquipPayload struct {
	Item string `json:"item"`
}

// UnequipPayload asks to move the item in a slot back into the grid
type UnequipPayload struct {
	Category string `json:"category"`
}

// PickupPayload adds a new catalog item to the inventory
type PickupPayload struct {
	ItemID string `json:"item_id"`
}

// DiscardPayload drops a held item by instance id
type DiscardPayload struct {
	Item string `json:"item"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to client after joining
type WelcomePayload struct {
	PlayerID  string         `json:"player_id"`
	Username  string         `json:"username"`
	SessionID string         `json:"session_id"`
	Catalog   []CatalogEntry `json:"catalog"`
	Layout    LayoutPayload  `json:"layout"`
	State     StatePayload   `json:"state"`
	Skipped   int            `json:"skipped,omitempty"` // saved items that could not be restored
	Session   SessionStatus  `json:"session_status"`
}

// CatalogEntry describes an item type
type CatalogEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Category string `json:"category"`
}

// LayoutPayload tells the client where the grid and slots are drawn
type LayoutPayload struct {
	OriginX  float64         `json:"origin_x"`
	OriginY  float64         `json:"origin_y"`
	CellSize float64         `json:"cell_size"`
	Slots    map[string]Rect `json:"slots"`
}

// Rect is a screen rectangle
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// ItemState is one held item
type ItemState struct {
	Instance string `json:"instance"`
	ItemID   string `json:"item_id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Category string `json:"category"`
}

// StatePayload is a full inventory snapshot
type StatePayload struct {
	Width     int                  `json:"width"`
	Height    int                  `json:"height"`
	Grid      []ItemState          `json:"grid"`
	Equipment map[string]ItemState `json:"equipment"`
	Dragging  *DragPayload         `json:"dragging,omitempty"`
}

// DragPayload describes a drag in progress
type DragPayload struct {
	Item     string `json:"item"`
	Validity string `json:"validity"`
}

// ItemPlacedPayload notifies that an item now occupies grid cells
type ItemPlacedPayload struct {
	Item ItemState `json:"item"`
}

// ItemRemovedPayload notifies that an item left the grid
type ItemRemovedPayload struct {
	Instance string `json:"instance"`
}

// EquippedPayload notifies that a slot was filled
type EquippedPayload struct {
	Category string    `json:"category"`
	Item     ItemState `json:"item"`
}

// UnequippedPayload notifies that a slot was emptied
type UnequippedPayload struct {
	Category string `json:"category"`
	Instance string `json:"instance"`
}

// DragValidityPayload reports the verdict for the current drag candidate
type DragValidityPayload struct {
	Validity string `json:"validity"`
}

// DragResultPayload reports how a drag ended
type DragResultPayload struct {
	Item  string `json:"item"`
	State string `json:"state"`
}

// SessionStatus represents the current session state
type SessionStatus struct {
	State       string `json:"state"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Uptime      int64  `json:"uptime"`
}

// ServerShutdownPayload warns clients that the server is stopping
type ServerShutdownPayload struct {
	Reason string `json:"reason"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
