package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"esports-waitlist/internal/common/errors"
	"esports-waitlist/internal/intake/form"
	"esports-waitlist/internal/intake/session"
	"esports-waitlist/internal/intake/submit"
	"esports-waitlist/internal/models"
)

const maxRequestBody = 64 << 10

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	writeJSON(w, status, map[string]interface{}{"status": http.StatusText(status), "checks": results})
}

type catalogResponse struct {
	Games            []models.Game        `json:"games"`
	Regions          []models.Region      `json:"regions"`
	Memberships      []models.Membership  `json:"memberships"`
	PlayIntents      []models.PlayIntent  `json:"playIntents"`
	PlayTimes        []models.PlayTime    `json:"playTimes"`
	ProInterests     []models.ProInterest `json:"proInterests"`
	Platforms        []models.Platform    `json:"platforms"`
	Days             []string             `json:"days"`
	TimeBlocks       []string             `json:"timeBlocks"`
	MaxSelectedGames int                  `json:"maxSelectedGames"`
	MaxPlayTimes     int                  `json:"maxPlayTimes"`
	MaxOtherGames    int                  `json:"maxOtherGames"`
	MaxNotesLength   int                  `json:"maxNotesLength"`
}

func (s *Server) catalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Games:            s.sessions.Catalog().Games(),
		Regions:          models.Regions,
		Memberships:      models.Memberships,
		PlayIntents:      models.PlayIntents,
		PlayTimes:        models.PlayTimes,
		ProInterests:     models.ProInterests,
		Platforms:        models.Platforms,
		Days:             models.Days,
		TimeBlocks:       models.TimeBlocks,
		MaxSelectedGames: form.MaxSelectedGames,
		MaxPlayTimes:     form.MaxPlayTimes,
		MaxOtherGames:    form.MaxOtherGames,
		MaxNotesLength:   form.MaxNotesLength,
	})
}

// identityStatus never fails the page: an unreachable provider reads as
// signed out.
func (s *Server) identityStatus(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))

	signedIn, err := s.identity.IsSignedIn(r.Context(), token)
	if err != nil {
		s.logger.Warn("Identity check failed", map[string]interface{}{"error": err.Error()})
		signedIn = false
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"signedIn":  signedIn,
		"signUpUrl": s.identity.SignUpURL(),
		"signInUrl": s.identity.SignInURL(),
	})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Create(r.Context(), session.AttributionFromQuery(r.URL.Query()))
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Discard(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		s.writeError(w, errors.NewInvalidActionError(err.Error()), nil)
		return
	}
	action, err := form.DecodeAction(data)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}

	sess, err := s.sessions.Dispatch(r.Context(), mux.Vars(r)["id"], action)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type submitResponse struct {
	Result  submit.Result    `json:"result"`
	Session *session.Session `json:"session,omitempty"`
}

// submit answers 200 whenever the gateway did its job; the upstream outcome
// is in result.status.
func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	out, err := s.sessions.Submit(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err, out.Errors)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{Result: out.Result, Session: out.Session})
}

func (s *Server) submitPartnership(w http.ResponseWriter, r *http.Request) {
	var in models.PartnershipInquiry
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&in); err != nil {
		s.writeError(w, errors.NewInvalidActionError("malformed partnership inquiry: "+err.Error()), nil)
		return
	}

	out, err := s.sessions.SubmitPartnership(r.Context(), in)
	if err != nil {
		s.writeError(w, err, out.Errors)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{Result: out.Result})
}
