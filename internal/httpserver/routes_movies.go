// internal/httpserver/routes_movies.go
//
// HTTP routes for the movie search page.
//   - GET /movies/search?q=<text> → matching movies with star ratings
//   - GET /movies/{id}            → expanded detail for one movie

package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/robalobadob/breedquiz/apps/go-server/internal/movies"
)

const msgNoMovies = "No results found"

// mountMovies registers all /movies routes.
func (s *Server) mountMovies(r chi.Router) {
	if s.deps.Formatter == nil {
		s.deps.Formatter = movies.NewFormatter(language.English)
	}
	r.Route("/movies", func(r chi.Router) {
		r.Get("/search", s.handleMovieSearch)
		r.Get("/{id}", s.handleMovieDetail)
	})
}

// movieHit is one search result row.
type movieHit struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Tagline string `json:"tagline,omitempty"`
	Stars   string `json:"stars"`
}

// movieSearchRes is returned by /movies/search.
type movieSearchRes struct {
	Query   string     `json:"query"`
	Results []movieHit `json:"results"`
	Message string     `json:"message,omitempty"`
}

// handleMovieSearch filters the loaded catalog.
// A blank query clears the list without a message.
func (s *Server) handleMovieSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	found := s.deps.Movies.Search(q)

	res := movieSearchRes{Query: q, Results: make([]movieHit, 0, len(found))}
	for _, m := range found {
		res.Results = append(res.Results, movieHit{
			ID:      m.ID,
			Title:   m.Title,
			Tagline: m.Tagline,
			Stars:   movies.Stars(m.VoteAverage),
		})
	}
	if len(found) == 0 && strings.TrimSpace(q) != "" {
		res.Message = msgNoMovies
	}
	writeJSON(w, http.StatusOK, res)
}

// handleMovieDetail returns the expanded view of one movie.
func (s *Server) handleMovieDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_id")
		return
	}
	m, ok := s.deps.Movies.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Formatter.Detail(m))
}
