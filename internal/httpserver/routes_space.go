// internal/httpserver/routes_space.go
//
// HTTP route for the NASA image search page.
//   - GET /space/search?q=<text> → result cards
//
// A blank query returns no cards and makes no upstream request.

package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/breedquiz/apps/go-server/internal/space"
)

const (
	msgNoSpaceResults = "No results found."
	msgSpaceFailed    = "An error occurred while fetching data."
)

// mountSpace registers all /space routes.
func (s *Server) mountSpace(r chi.Router) {
	r.Get("/space/search", s.handleSpaceSearch)
}

// spaceSearchRes is returned by /space/search.
type spaceSearchRes struct {
	Query   string       `json:"query"`
	Cards   []space.Card `json:"cards"`
	Message string       `json:"message,omitempty"`
}

func (s *Server) handleSpaceSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	cards, err := s.deps.Space.Search(r.Context(), q)
	switch {
	case errors.Is(err, space.ErrEmptyQuery):
		writeJSON(w, http.StatusOK, spaceSearchRes{Query: q, Cards: []space.Card{}})
		return
	case err != nil:
		log.Error().Err(err).Str("query", q).Msg("space search")
		writeError(w, http.StatusBadGateway, msgSpaceFailed)
		return
	}

	res := spaceSearchRes{Query: q, Cards: cards}
	if len(cards) == 0 {
		res.Cards = []space.Card{}
		res.Message = msgNoSpaceResults
	}
	writeJSON(w, http.StatusOK, res)
}
