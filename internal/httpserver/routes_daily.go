// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Run" mode.
// Exposes two endpoints under /daily:
//   - POST /daily/new         → start today's run (one attempt per user per date)
//   - GET  /daily/leaderboard → top results for today (or a given date)
//
// Daily sessions reuse the regular /game/draw and /game/play endpoints; the
// only differences are the deterministic per-date shuffle seed (every
// player sees the same draws) and the leaderboard row written when the run
// ends. The one-attempt rule is enforced here at session creation, backed
// by UNIQUE(user_id, date) in the results table.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carbonclash/go-server/internal/daily"
	"github.com/carbonclash/go-server/internal/game"
	"github.com/carbonclash/go-server/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv   *Server
	store *daily.Store
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{srv: s, store: daily.NewStore(s.db)}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID  string        `json:"gameId,omitempty"`
	Date    string        `json:"date"`
	Played  bool          `json:"played"`
	Summary *game.Summary `json:"summary,omitempty"`
}

// handleNew creates today's run for the caller, or reports Played=true when
// a result for today already exists.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.srv.ownerID(w, r)
	date := daily.DateKey(time.Now())

	played, err := d.store.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		log.Warn().Err(err).Msg("daily already-played check")
	}
	if played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	sess := &store.Session{
		ID:        uuid.NewString(),
		OwnerID:   uid,
		Daily:     true,
		Date:      date,
		StartedAt: time.Now().UTC(),
		State:     game.New(d.srv.pool),
	}
	if !d.srv.createSession(w, r, sess) {
		return
	}
	summary := sess.State.Summary()
	_ = json.NewEncoder(w).Encode(dailyNewRes{
		GameID:  sess.ID,
		Date:    date,
		Summary: &summary,
	})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the top 20 results for ?date= (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	rows, err := d.store.Leaderboard(r.Context(), date, limit)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
