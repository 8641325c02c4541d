// internal/httpserver/routes_quiz.go
//
// HTTP routes for the dog breed quiz.
// Exposes under /quiz:
//   - GET  /quiz         → current view (image, choices, scores, advance flag)
//   - POST /quiz/init    → load catalog + best score, start the first round
//   - POST /quiz/round   → manual retry of a pending round after an image failure
//   - POST /quiz/answer  → submit one answer for the active round
//   - POST /quiz/next    → advance after an answered round
//
// The controller is single-player and not concurrency-safe. Calls are serialized;
// while one is pending (e.g. waiting on dog.ceo) others get 409 busy.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/breedquiz/apps/go-server/internal/quiz"
)

// mountQuiz registers all /quiz routes.
func (s *Server) mountQuiz(r chi.Router) {
	r.Route("/quiz", func(r chi.Router) {
		r.Get("/", s.withQuiz(s.handleQuizView))
		r.Post("/init", s.withQuiz(s.handleQuizInit))
		r.Post("/round", s.withQuiz(s.handleQuizRound))
		r.Post("/answer", s.withQuiz(s.handleQuizAnswer))
		r.Post("/next", s.withQuiz(s.handleQuizNext))
	})
}

// quizRes is the response payload of every /quiz route.
type quizRes struct {
	quiz.View
	Correct *bool  `json:"correct,omitempty"` // set by /quiz/answer only
	Error   string `json:"error,omitempty"`
}

// answerReq is the request payload for /quiz/answer.
type answerReq struct {
	Breed string `json:"breed"`
}

// withQuiz serializes access to the controller, rejecting overlapping calls.
func (s *Server) withQuiz(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.quizMu.TryLock() {
			writeError(w, http.StatusConflict, "busy")
			return
		}
		defer s.quizMu.Unlock()
		h(w, r)
	}
}

func (s *Server) handleQuizView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, quizRes{View: s.deps.Quiz.View()})
}

func (s *Server) handleQuizInit(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Quiz.Initialize(r.Context())
	s.writeQuiz(w, err, nil)
}

func (s *Server) handleQuizRound(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Quiz.StartRound(r.Context())
	s.writeQuiz(w, err, nil)
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	correct, err := s.deps.Quiz.SubmitAnswer(r.Context(), req.Breed)
	if err != nil {
		s.writeQuiz(w, err, nil)
		return
	}
	s.writeQuiz(w, nil, &correct)
}

func (s *Server) handleQuizNext(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Quiz.AdvanceRound(r.Context())
	s.writeQuiz(w, err, nil)
}

// writeQuiz maps a controller outcome to a status code and the current view.
func (s *Server) writeQuiz(w http.ResponseWriter, err error, correct *bool) {
	v := s.deps.Quiz.View()
	if err == nil {
		writeJSON(w, http.StatusOK, quizRes{View: v, Correct: correct})
		return
	}

	status := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, quiz.ErrCatalogUnavailable),
		errors.Is(err, quiz.ErrInsufficientCatalog),
		errors.Is(err, quiz.ErrImageUnavailable):
		status = http.StatusBadGateway
		if v.Message != "" {
			msg = v.Message
		}
	case errors.Is(err, quiz.ErrNotInitialized),
		errors.Is(err, quiz.ErrRoundInProgress),
		errors.Is(err, quiz.ErrRoundNotComplete),
		errors.Is(err, quiz.ErrAnswerLocked):
		status = http.StatusConflict
	case errors.Is(err, quiz.ErrUnknownChoice):
		status = http.StatusBadRequest
	default:
		log.Error().Err(err).Msg("quiz")
	}
	writeJSON(w, status, quizRes{View: v, Error: msg})
}
