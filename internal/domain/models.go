package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when the row an operation is anchored on does not
// exist. It is not a storage fault.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned for arguments rejected before reaching storage.
var ErrInvalidInput = errors.New("invalid input")

type Player struct {
	PlayerID     int64     `json:"player_id"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	RankMMR      int       `json:"rank_mmr"`
	CreatedAt    time.Time `json:"created_at"`
}

type GameRole struct {
	RoleID      int64  `json:"role_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type GameCharacter struct {
	CharacterID int64   `json:"character_id"`
	Name        string  `json:"name"`
	RoleID      int64   `json:"role_id"`
	BaseHealth  int     `json:"base_health"`
	AttackPower int     `json:"attack_power"`
	AttackSpeed float64 `json:"attack_speed"`
}

type Ability struct {
	AbilityID int64   `json:"ability_id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Power     int     `json:"power"`
	Cooldown  float64 `json:"cooldown"`
}

// Slot values, in display order.
const (
	SlotPrimary   = "primary"
	SlotSecondary = "secondary"
	SlotTertiary  = "tertiary"
)

type CharacterAbility struct {
	CharacterID int64  `json:"character_id"`
	AbilityID   int64  `json:"ability_id"`
	Slot        string `json:"slot"`
}

type MatchGame struct {
	MatchID   int64      `json:"match_id"`
	Gamemode  string     `json:"gamemode"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"` // nil while in progress
}

type Team struct {
	TeamID    int64  `json:"team_id"`
	MatchID   int64  `json:"match_id"`
	TeamLabel string `json:"team_label"`
}

// Match results.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
)

type MatchPlayer struct {
	MatchPlayerID int64  `json:"match_player_id"`
	MatchID       int64  `json:"match_id"`
	PlayerID      int64  `json:"player_id"`
	CharacterID   int64  `json:"character_id"`
	TeamID        int64  `json:"team_id"`
	Result        string `json:"result"`
}

type MatchPlayerStats struct {
	MatchPlayerID int64 `json:"match_player_id"`
	Kills         int   `json:"kills"`
	Deaths        int   `json:"deaths"`
	Assists       int   `json:"assists"`
	DamageDealt   int   `json:"damage_dealt"`
	HealingDone   int   `json:"healing_done"`
	MMRDelta      int   `json:"mmr_delta"`
}

type Item struct {
	ItemID   int64  `json:"item_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Rarity   string `json:"rarity"`
}

type Entitlement struct {
	EntitlementID int64     `json:"entitlement_id"`
	PlayerID      int64     `json:"player_id"`
	ItemID        int64     `json:"item_id"`
	Quantity      int       `json:"quantity"`
	Status        string    `json:"status"`
	AcquiredAt    time.Time `json:"acquired_at"`
}

// Txn is an append-only ledger entry explaining an entitlement change.
type Txn struct {
	TxnID     int64     `json:"txn_id"`
	PlayerID  int64     `json:"player_id"`
	ItemID    int64     `json:"item_id"`
	Currency  string    `json:"currency"`
	Amount    int       `json:"amount"`
	Quantity  int       `json:"quantity"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}
