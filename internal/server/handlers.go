package server

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/job-scout/internal/db"
	"github.com/jonathan/job-scout/internal/server/middleware"
)

// relevantJobsDefaultLimit and bounds mirror the listing endpoint contract.
const (
	relevantJobsDefaultLimit = 50
	relevantJobsMaxLimit     = 100
)

// handleScrapeMyJobs accepts a scrape request and runs it in the
// background. The response is an immediate acknowledgment; progress is
// observable through the status endpoint.
func (s *Server) handleScrapeMyJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// Detach from the request context: the run outlives the response.
	go s.runner.RunScrape(context.Background(), userID)

	s.jsonResponse(w, http.StatusAccepted, map[string]string{
		"message": "Scraping started in background",
		"status":  "processing",
	})
}

// handleScrapeStatus reports the last known scrape state for the user.
func (s *Server) handleScrapeStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	st, err := s.status.Get(r.Context(), userID.String())
	if err != nil {
		s.logger.Error("failed to read scrape status", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to read status")
		return
	}
	s.jsonResponse(w, http.StatusOK, st)
}

// handleAnalyzeMyJobs starts background analysis of the user's
// unanalyzed jobs. Without a completion backend the endpoint reports
// itself unavailable.
func (s *Server) handleAnalyzeMyJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if !s.runner.CanAnalyze() {
		err := &ErrAnalysisUnavailable{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	go func() {
		if _, err := s.runner.RunAnalyze(context.Background(), userID); err != nil {
			s.logger.Error("background analysis failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		}
	}()

	s.jsonResponse(w, http.StatusAccepted, map[string]string{
		"message": "Analysis started in background",
		"status":  "processing",
	})
}

// handleRelevantJobs lists the user's jobs, best matches first.
func (s *Server) handleRelevantJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := relevantJobsDefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > relevantJobsMaxLimit {
			verr := &ErrValidation{Field: "limit", Message: "must be an integer between 1 and 100"}
			s.errorResponse(w, HTTPStatus(verr), verr.Error())
			return
		}
	}

	jobs, err := s.store.ListJobs(r.Context(), userID, limit)
	if err != nil {
		s.logger.Error("failed to list jobs", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// handleProfile returns the user's stored personal info and preferences.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	info, err := s.store.GetPersonalInfo(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to load personal info", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	prefs, err := s.store.GetUserPreferences(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to load preferences", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_prefs": prefs,
		"info":      info,
	})
}
