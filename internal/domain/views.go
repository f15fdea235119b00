package domain

import "time"

// View models assembled by the aggregation queries. Pointer fields are nil
// when the underlying rows are missing, which is not the same as zero.

type MatchDetail struct {
	Match   MatchGame          `json:"match"`
	Players []MatchParticipant `json:"players"`
}

type MatchParticipant struct {
	MatchPlayerID int64  `json:"match_player_id"`
	PlayerID      int64  `json:"player_id"`
	DisplayName   string `json:"display_name"`
	CharacterID   int64  `json:"character_id"`
	CharacterName string `json:"character_name"`
	Result        string `json:"result"`
	TeamLabel     string `json:"team_label"`
	Kills         *int   `json:"kills"`
	Deaths        *int   `json:"deaths"`
	Assists       *int   `json:"assists"`
	DamageDealt   *int   `json:"damage_dealt"`
	HealingDone   *int   `json:"healing_done"`
	MMRDelta      *int   `json:"mmr_delta"`
}

// HasStats reports whether a stats row was recorded for the participant.
func (p MatchParticipant) HasStats() bool {
	return p.Kills != nil
}

type PlayerProfile struct {
	Player     Player              `json:"player"`
	Stats      PlayerStats         `json:"stats"`
	Matches    []RecentMatch       `json:"matches"`
	Characters []FavoriteCharacter `json:"characters"`
}

type PlayerStats struct {
	TotalMatches int  `json:"total_matches"`
	Wins         int  `json:"wins"`
	Losses       int  `json:"losses"`
	AvgKills     *int `json:"avg_kills"`
	AvgDeaths    *int `json:"avg_deaths"`
	AvgAssists   *int `json:"avg_assists"`
	AvgDamage    *int `json:"avg_damage"`
	AvgHealing   *int `json:"avg_healing"`
}

type RecentMatch struct {
	MatchID       int64      `json:"match_id"`
	Gamemode      string     `json:"gamemode"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at"`
	Result        string     `json:"result"`
	TeamLabel     string     `json:"team_label"`
	CharacterID   int64      `json:"character_id"`
	CharacterName string     `json:"character_name"`
	Kills         *int       `json:"kills"`
	Deaths        *int       `json:"deaths"`
	Assists       *int       `json:"assists"`
	DamageDealt   *int       `json:"damage_dealt"`
	HealingDone   *int       `json:"healing_done"`
	MMRDelta      *int       `json:"mmr_delta"`
}

type FavoriteCharacter struct {
	CharacterID   int64  `json:"character_id"`
	CharacterName string `json:"character_name"`
	TimesPlayed   int    `json:"times_played"`
	Wins          int    `json:"wins"`
}

type CharacterSummary struct {
	GameCharacter
	RoleName string `json:"role_name"`
}

type CharacterDetail struct {
	Character       GameCharacter      `json:"character"`
	RoleName        string             `json:"role_name"`
	RoleDescription string             `json:"role_description"`
	Abilities       []SlottedAbility   `json:"abilities"`
	Stats           CharacterPlayStats `json:"stats"`
}

type SlottedAbility struct {
	Ability
	Slot string `json:"slot"`
}

type CharacterPlayStats struct {
	TimesPlayed int  `json:"times_played"`
	Wins        int  `json:"wins"`
	Losses      int  `json:"losses"`
	AvgKills    *int `json:"avg_kills"`
	AvgDeaths   *int `json:"avg_deaths"`
	AvgAssists  *int `json:"avg_assists"`
	AvgDamage   *int `json:"avg_damage"`
}

type EntitlementView struct {
	Entitlement
	DisplayName string `json:"display_name"`
	ItemName    string `json:"item_name"`
}
