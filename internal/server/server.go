package server

import (
	"fmt"
	"net/http"

	"moba-stats/internal/constants"
	"moba-stats/internal/domain"
	"moba-stats/internal/middleware"
	"moba-stats/internal/service"

	"github.com/rs/zerolog"
)

// StatsServer exposes the services as JSON endpoints.
type StatsServer struct {
	playerSvc    *service.PlayerService
	matchSvc     *service.MatchService
	characterSvc *service.CharacterService
	catalogSvc   *service.CatalogService
	adminSvc     *service.AdminService
	logger       zerolog.Logger
}

func NewStatsServer(
	playerSvc *service.PlayerService,
	matchSvc *service.MatchService,
	characterSvc *service.CharacterService,
	catalogSvc *service.CatalogService,
	adminSvc *service.AdminService,
	logger zerolog.Logger,
) *StatsServer {
	return &StatsServer{
		playerSvc:    playerSvc,
		matchSvc:     matchSvc,
		characterSvc: characterSvc,
		catalogSvc:   catalogSvc,
		adminSvc:     adminSvc,
		logger:       logger,
	}
}

// Handler wraps the routes with request ids, access logging and panic
// recovery.
func (s *StatsServer) Handler() http.Handler {
	return middleware.RequestID(s.logger)(middleware.Recover(s.Routes()))
}

func (s *StatsServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// schema admin
	mux.HandleFunc("POST /drop", s.drop)
	mux.HandleFunc("POST /create", s.create)
	mux.HandleFunc("POST /seed", s.seed)
	mux.HandleFunc("GET /tables", s.tables)
	mux.HandleFunc("GET /query/{table}", s.queryTable)

	// players
	mux.HandleFunc("GET /players", s.listPlayers)
	mux.HandleFunc("POST /player/upsert", s.upsertPlayer)
	mux.HandleFunc("POST /player/delete/{id}", s.deletePlayer)
	mux.HandleFunc("GET /player/search", s.searchPlayers)
	mux.HandleFunc("GET /player/{id}/profile", s.playerProfile)

	// roles
	mux.HandleFunc("GET /roles", s.listRoles)
	mux.HandleFunc("POST /role/upsert", s.upsertRole)
	mux.HandleFunc("POST /role/delete/{id}", s.deleteRole)

	// matches
	mux.HandleFunc("GET /matches", s.listMatches)
	mux.HandleFunc("GET /match/{id}/details", s.matchDetails)

	// items & entitlements
	mux.HandleFunc("GET /items", s.listItems)
	mux.HandleFunc("GET /items/all", s.listItems)
	mux.HandleFunc("POST /item/upsert", s.upsertItem)
	mux.HandleFunc("POST /item/delete/{id}", s.deleteItem)
	mux.HandleFunc("GET /entitlements", s.listEntitlements)
	mux.HandleFunc("POST /entitlement/grant", s.grantEntitlement)
	mux.HandleFunc("GET /transactions", s.listTransactions)

	// game data
	mux.HandleFunc("GET /characters", s.listCharacters)
	mux.HandleFunc("GET /character/{id}", s.characterDetails)

	return mux
}

func (s *StatsServer) drop(w http.ResponseWriter, r *http.Request) {
	if err := s.adminSvc.DropAll(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "All tables dropped successfully")
}

func (s *StatsServer) create(w http.ResponseWriter, r *http.Request) {
	if err := s.adminSvc.CreateAll(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "All tables created successfully")
}

func (s *StatsServer) seed(w http.ResponseWriter, r *http.Request) {
	if err := s.adminSvc.SeedAll(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "Database seeded successfully")
}

func (s *StatsServer) tables(w http.ResponseWriter, r *http.Request) {
	tables, err := s.adminSvc.ListTables(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{"tables": tables})
}

func (s *StatsServer) queryTable(w http.ResponseWriter, r *http.Request) {
	rows, err := s.adminSvc.Browse(r.Context(), r.PathValue("table"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{"rows": rows})
}

func (s *StatsServer) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.playerSvc.ListPlayers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{"players": players})
}

type upsertPlayerRequest struct {
	PlayerID     int64  `json:"player_id"`
	DisplayName  string `json:"display_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	RankMMR      *int   `json:"rank_mmr"`
}

func (s *StatsServer) upsertPlayer(w http.ResponseWriter, r *http.Request) {
	var req upsertPlayerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p := &domain.Player{
		PlayerID:     req.PlayerID,
		DisplayName:  req.DisplayName,
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
		RankMMR:      constants.DefaultRankMMR,
	}
	if req.RankMMR != nil {
		p.RankMMR = *req.RankMMR
	}

	id, err := s.playerSvc.SavePlayer(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	msg := "Player created successfully"
	if req.PlayerID != 0 {
		msg = fmt.Sprintf("Player %d updated successfully", id)
	}
	writeOK(w, envelope{"message": msg, "player_id": id})
}

func (s *StatsServer) deletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.playerSvc.DeletePlayer(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, fmt.Sprintf("Player %d deleted successfully", id))
}

func (s *StatsServer) searchPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.playerSvc.SearchPlayers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{"players": players})
}

func (s *StatsServer) playerProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	profile, err := s.playerSvc.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{
		"player":     profile.Player,
		"stats":      profile.Stats,
		"matches":    profile.Matches,
		"characters": profile.Characters,
	})
}

func (s *StatsServer) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.catalogSvc.ListRoles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{"roles": roles})
}

func (s *StatsServer) upsertRole(w http.ResponseWriter, r *http.Request) {
	var role domain.GameRole
	if err := decodeBody(r, &role); err != nil {
		writeError(w, r, err)
		return
	}

	updating := role.RoleID != 0
	id, err := s.catalogSvc.SaveRole(r.Context(), &role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	msg := "Role created successfully"
	if updating {
		msg = fmt.Sprintf("Role %d updated successfully", id)
	}
	writeOK(w, envelope{"message": msg, "role_id": id})
}

func (s *StatsServer) deleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.catalogSvc.DeleteRole(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, fmt.Sprintf("Role %d deleted successfully", id))
}

func (s *StatsServer) listMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.matchSvc.ListMatches(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{"matches": matches})
}

func (s *StatsServer) matchDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	detail, err := s.matchSvc.GetMatchDetail(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{"match": detail.Match, "players": detail.Players})
}

func (s *StatsServer) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalogSvc.ListItems(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{"items": items})
}

func (s *StatsServer) upsertItem(w http.ResponseWriter, r *http.Request) {
	var item domain.Item
	if err := decodeBody(r, &item); err != nil {
		writeError(w, r, err)
		return
	}

	updating := item.ItemID != 0
	id, err := s.catalogSvc.SaveItem(r.Context(), &item)
	if err != nil {
		writeError(w, r, err)
		return
	}

	msg := "Item created successfully"
	if updating {
		msg = fmt.Sprintf("Item %d updated successfully", id)
	}
	writeOK(w, envelope{"message": msg, "item_id": id})
}

func (s *StatsServer) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.catalogSvc.DeleteItem(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, fmt.Sprintf("Item %d deleted successfully", id))
}

func (s *StatsServer) listEntitlements(w http.ResponseWriter, r *http.Request) {
	entitlements, err := s.catalogSvc.ListEntitlements(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{"entitlements": entitlements})
}

type grantRequest struct {
	PlayerID int64 `json:"player_id"`
	ItemID   int64 `json:"item_id"`
	Quantity *int  `json:"quantity"`
}

func (s *StatsServer) grantEntitlement(w http.ResponseWriter, r *http.Request) {
	var req grantRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	ent, err := s.catalogSvc.GrantEntitlement(r.Context(), req.PlayerID, req.ItemID, quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{"message": "Item granted to player successfully", "entitlement": ent})
}

func (s *StatsServer) listTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.catalogSvc.ListTransactions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{"transactions": txns})
}

func (s *StatsServer) listCharacters(w http.ResponseWriter, r *http.Request) {
	characters, err := s.characterSvc.ListCharacters(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{"characters": characters})
}

func (s *StatsServer) characterDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	detail, err := s.characterSvc.GetCharacterDetail(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, envelope{
		"character":        detail.Character,
		"role_name":        detail.RoleName,
		"role_description": detail.RoleDescription,
		"abilities":        detail.Abilities,
		"stats":            detail.Stats,
	})
}
