// internal/httpserver/server.go
//
// HTTP server wiring for the carbonclash backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Playthrough endpoints (optional auth): POST /game/new, POST /game/draw,
//     POST /game/play, GET /game/state.
//   - Daily run endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me,
//     /games/mine — see auth.go.
//
// Notes:
//   - The engine itself does no I/O; handlers thread game.State values
//     through the session store and persist milestones to SQLite.
//   - The reducer is never guarded after game over; handlers check the
//     status after each transition and refuse further plays themselves.
//   - CORS is origin-aware and credentials-enabled (so cookies work).

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carbonclash/go-server/internal/daily"
	"github.com/carbonclash/go-server/internal/game"
	"github.com/carbonclash/go-server/internal/store"
)

// Server bundles router, in-memory session store, DB handle, and the
// loaded card pool.
type Server struct {
	r       *chi.Mux
	store   store.Store
	db      *sql.DB
	pool    game.Deck
	reducer *game.Reducer // default random-shuffle reducer for free play
	salt    string        // daily-run seed salt
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, pool game.Deck) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		db:      db,
		pool:    pool,
		reducer: game.NewReducer(nil),
		salt:    getEnv("DAILY_SALT", "local_dev_salt"),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"carbonclash-go","endpoints":["/health","POST /game/new","POST /game/draw","POST /game/play","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountMetrics()

	// Playthrough endpoints — OPTIONAL AUTH (guests can play)
	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Post("/game/draw", s.handleDraw)
	s.r.With(s.withOptionalAuth()).Post("/game/play", s.handlePlay)
	s.r.With(s.withOptionalAuth()).Get("/game/state", s.handleState)

	// Daily run — OPTIONAL AUTH (guests can play; one attempt per date)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	// Debug: card pool count
	s.r.Get("/debug/cards", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"cards": len(s.pool)})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameRes is returned by POST /game/new.
type newGameRes struct {
	GameID  string       `json:"gameId"`
	Summary game.Summary `json:"summary"`
}

// handleNewGame creates a new in-memory playthrough session and persists a
// DB "owner" row (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	sess := &store.Session{
		ID:        uuid.NewString(),
		OwnerID:   s.ownerID(w, r),
		StartedAt: time.Now().UTC(),
		State:     game.New(s.pool),
	}
	if !s.createSession(w, r, sess) {
		return
	}
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID, Summary: sess.State.Summary()})
}

// createSession saves a session and writes the playthrough owner row.
// Shared by free play and the daily run; callers encode their own response.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request, sess *store.Session) bool {
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return false
	}

	now := sess.StartedAt.Format(time.RFC3339)
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		_, err := s.db.Exec(`INSERT INTO playthroughs (id, user_id, started_at, status, rounds, capital, emission)
		                     VALUES (?,?,?,?,0,?,0)`, sess.ID, me.ID, now, game.StatusOngoing, float64(game.StartingCapital))
		if err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert user playthrough row")
		}
	} else {
		_, err := s.db.Exec(`INSERT INTO playthroughs (id, anonymous_id, started_at, status, rounds, capital, emission)
		                     VALUES (?,?,?,?,0,?,0)`, sess.ID, sess.OwnerID, now, game.StatusOngoing, float64(game.StartingCapital))
		if err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert anon playthrough row")
		}
	}

	playthroughsStarted.Inc()
	return true
}

// drawReq/Res payloads for POST /game/draw.
type drawReq struct {
	GameID string `json:"gameId"`
}
type handCard struct {
	Index       int    `json:"index"` // 0-based selection index
	Title       string `json:"title"`
	HelpText    string `json:"helpText,omitempty"`
	DeltaProfit string `json:"deltaProfit"`
	DeltaCO2    string `json:"deltaCo2"`
}
type drawRes struct {
	Hand   []handCard  `json:"hand"`
	Status game.Status `json:"status"`
}

// handleDraw replaces the session's hand with a fresh draw. Drawing after
// game over is refused; the engine does not guard, the driver must.
func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	var req drawReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if sess.State.Status == game.StatusGameOver {
		http.Error(w, `{"error":"game_over"}`, http.StatusConflict)
		return
	}

	sess.State = s.reducerFor(sess).Apply(sess.State, game.DrawCards{Count: game.DefaultHandSize})
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(drawRes{Hand: handJSON(sess.State.Hand), Status: sess.State.Status})
}

// playReq/Res payloads for POST /game/play.
type playReq struct {
	GameID string `json:"gameId"`
	Index  int    `json:"index"` // 0-based index into the current hand
}
type playRes struct {
	Played  string       `json:"played"`
	Summary game.Summary `json:"summary"`
}

// handlePlay resolves one round: picks the selected card from the hand,
// applies the PlayCard transition, persists progress, and (on a terminal
// status) updates history and user stats in a best-effort transaction.
// An out-of-range index leaves the state untouched.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if sess.State.Status == game.StatusGameOver {
		http.Error(w, `{"error":"game_over"}`, http.StatusConflict)
		return
	}

	card, ok := sess.State.Hand.Pick(req.Index)
	if !ok {
		// No selection made; the round's state is unchanged.
		http.Error(w, `{"error":"invalid_selection"}`, http.StatusUnprocessableEntity)
		return
	}

	prev := sess.State.Status
	sess.State = s.reducerFor(sess).Apply(sess.State, game.PlayCard{Card: card})
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	cardsPlayed.Inc()

	s.persistProgress(r, sess, prev)
	_ = json.NewEncoder(w).Encode(playRes{Played: card.String(), Summary: sess.State.Summary()})
}

// persistProgress mirrors the session into SQLite (best effort, non-fatal
// if it fails) and bumps stats/metrics on status changes.
func (s *Server) persistProgress(r *http.Request, sess *store.Session, prev game.Status) {
	st := sess.State
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	ownerClause := `anonymous_id=?`
	ownerArg := any(sess.OwnerID)
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin progress tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE playthroughs SET rounds=?, capital=?, emission=? WHERE id=? AND `+ownerClause,
		st.Round(), float64(st.Finance.Capital), float64(st.Emission), sess.ID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update playthrough progress")
	}

	if st.Status != prev {
		playthroughsFinished.WithLabelValues(string(st.Status)).Inc()
		switch st.Status {
		case game.StatusBeaten:
			if _, err := tx.Exec(`UPDATE playthroughs SET status=? WHERE id=? AND `+ownerClause,
				st.Status, sess.ID, ownerArg); err != nil {
				log.Warn().Err(err).Msg("mark playthrough beaten")
			}
			if me != nil {
				if err := s.bumpBeaten(tx, me.ID); err != nil {
					log.Warn().Err(err).Str("user", me.ID).Msg("bump beaten stats")
				}
			}
		case game.StatusGameOver:
			if _, err := tx.Exec(`UPDATE playthroughs SET status=?, finished_at=? WHERE id=? AND `+ownerClause,
				st.Status, time.Now().UTC().Format(time.RFC3339), sess.ID, ownerArg); err != nil {
				log.Warn().Err(err).Msg("finish playthrough")
			}
			if me != nil {
				if err := s.finishStats(tx, me.ID, st.Round()); err != nil {
					log.Warn().Err(err).Str("user", me.ID).Msg("finish stats")
				}
			}
		}
	}
	_ = tx.Commit()

	// The daily-result write uses its own connection, so it has to wait
	// until the progress transaction has released the write lock.
	if st.Status != prev && st.Status == game.StatusGameOver && sess.Daily {
		res := daily.Result{
			UserID:  sess.OwnerID,
			Date:    sess.Date,
			Rounds:  st.Round(),
			Capital: float64(st.Finance.Capital),
		}
		if err := daily.NewStore(s.db).InsertResult(r.Context(), res); err != nil {
			log.Warn().Err(err).Msg("insert daily result")
		}
	}
}

// handleState returns the displayable summary plus the current hand.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), r.URL.Query().Get("gameId"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"summary": sess.State.Summary(),
		"hand":    handJSON(sess.State.Hand),
	})
}

// reducerFor picks the reducer for a session: seeded for daily runs (the
// seed depends on date + round so every player sees the same draws),
// random otherwise.
func (s *Server) reducerFor(sess *store.Session) *game.Reducer {
	if sess.Daily {
		return game.NewReducer(daily.Shuffler(sess.Date, s.salt, sess.State.Round()))
	}
	return s.reducer
}

// handJSON converts a hand into its wire form.
func handJSON(h game.Hand) []handCard {
	out := make([]handCard, 0, len(h))
	for i, c := range h {
		out = append(out, handCard{
			Index:       i,
			Title:       c.Title,
			HelpText:    c.HelpText,
			DeltaProfit: c.DeltaProfit.String(),
			DeltaCO2:    c.DeltaCO2.String(),
		})
	}
	return out
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
