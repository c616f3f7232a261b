package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/models"
)

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var query models.AskQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if query.Threshold == 0 {
		query.Threshold = s.config.FAQ.Threshold
	}
	if err := query.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("ask request", zap.String("question", query.Question), zap.Float64("threshold", query.Threshold))

	res := s.findAnswer(query.Question, query.Threshold)
	out := &models.AskResult{
		Answer:          res.Answer,
		Confidence:      res.Confidence,
		MatchedQuestion: res.MatchedQuestion,
		Source:          models.SourceFAQ,
	}
	if res.MatchedQuestion == nil {
		out.Source = models.SourceNone
		if query.Generate && s.gen != nil {
			text, err := s.gen.Generate(r.Context(), query.Question)
			if err != nil {
				s.logger.Warn("generation fallback failed", zap.Error(err))
			} else {
				out.Answer = text
				out.Source = models.SourceGenerated
			}
		}
	}
	out.QueryTimeMs = time.Since(start).Milliseconds()
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateFAQ(w http.ResponseWriter, r *http.Request) {
	var input models.FAQInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("create faq request", zap.String("question", input.Question))

	faq := &models.FAQ{Question: input.Question, Answer: input.Answer}
	if err := s.store.CreateFAQ(r.Context(), faq); err != nil {
		s.logger.Error("create faq failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.addEntry(input.Question, input.Answer)
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": faq.ID, "status": "created"})
}

func (s *Server) handleListFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := s.store.ListFAQs(r.Context())
	if err != nil {
		s.logger.Error("list faqs failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if faqs == nil {
		faqs = []*models.FAQ{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"faqs": faqs, "total": len(faqs)})
}

func (s *Server) handleGetFAQ(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	faq, err := s.store.GetFAQ(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "faq not found")
		return
	}
	s.respondJSON(w, http.StatusOK, faq)
}

func (s *Server) handleDeleteFAQ(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete faq request", zap.String("id", id))
	if err := s.store.DeleteFAQ(r.Context(), id); err != nil {
		s.respondError(w, http.StatusNotFound, "faq not found")
		return
	}
	// The matcher corpus is append-only, so a delete rebuilds it.
	if err := s.Reload(r.Context()); err != nil {
		s.logger.Error("reload after delete failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountFAQs(r.Context())
	if err != nil {
		s.logger.Error("status: count faqs failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"stored_faqs":    count,
		"corpus_entries": s.corpusLen(),
		"config": map[string]interface{}{
			"threshold":     s.config.FAQ.Threshold,
			"database_path": s.config.Storage.DatabasePath,
			"sources":       s.config.FAQ.Sources,
			"llm_enabled":   s.config.LLM.Enabled,
		},
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
