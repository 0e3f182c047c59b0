package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mnemo-app/mnemo/internal/engine"
	"github.com/mnemo-app/mnemo/internal/srs"
)

// itemJSON is the wire shape of a review item.
type itemJSON struct {
	ID            int64   `json:"id"`
	TrackableType string  `json:"trackable_type"`
	TrackableID   int64   `json:"trackable_id"`
	Title         string  `json:"title"`
	EaseFactor    float64 `json:"ease_factor"`
	IntervalDays  int     `json:"interval_days"`
	Repetitions   int     `json:"repetitions"`
	LapseCount    int     `json:"lapse_count"`
	ReviewCount   int     `json:"review_count"`
	LastReviewed  *string `json:"last_reviewed_at"`
	NextReview    string  `json:"next_review_at"`
	IsSuspended   bool    `json:"is_suspended"`
	IsLeech       bool    `json:"is_leech"`
	CreatedAt     string  `json:"created_at"`
}

func toItemJSON(item srs.Item) itemJSON {
	out := itemJSON{
		ID:            item.ID,
		TrackableType: string(item.TrackableType),
		TrackableID:   item.TrackableID,
		Title:         item.Title,
		EaseFactor:    item.EaseFactor,
		IntervalDays:  item.IntervalDays,
		Repetitions:   item.Repetitions,
		LapseCount:    item.LapseCount,
		ReviewCount:   item.ReviewCount,
		NextReview:    item.NextReviewAt.Format(time.RFC3339),
		IsSuspended:   item.IsSuspended,
		IsLeech:       item.IsLeech,
		CreatedAt:     item.CreatedAt.Format(time.RFC3339),
	}
	if item.LastReviewedAt != nil {
		v := item.LastReviewedAt.Format(time.RFC3339)
		out.LastReviewed = &v
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeEngineError maps the engine's sentinel errors onto status codes.
// Anything that is not a validation failure is a 500 and gets logged.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, srs.ErrInvalidQuality):
		status = http.StatusBadRequest
	case errors.Is(err, srs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, srs.ErrItemSuspended):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.log.Errorw("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	if n, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && n > 0 {
		return n
	}
	return def
}

func itemID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)

	queue, stats, err := s.engine.Queue(time.Now().UTC(), limit)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	type entryJSON struct {
		Item               itemJSON `json:"item"`
		Tier               int      `json:"tier"`
		OverdueDays        float64  `json:"overdue_days"`
		RetentionPercent   float64  `json:"retention_percent"`
		HealthBand         string   `json:"health_band"`
		HoursUntilCritical float64  `json:"hours_until_critical"`
	}
	out := make([]entryJSON, len(queue))
	for i, e := range queue {
		out[i] = entryJSON{
			Item:               toItemJSON(e.Item),
			Tier:               e.Tier,
			OverdueDays:        e.OverdueDays,
			RetentionPercent:   e.Decay.RetentionPercent,
			HealthBand:         string(e.Decay.Band),
			HoursUntilCritical: e.Decay.HoursUntilCritical,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"queue": out,
		"stats": stats,
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	minutes := queryInt(r, "minutes", 0)

	plan, err := s.engine.Plan(time.Now().UTC(), minutes)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleRegisterItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrackableType string `json:"trackable_type"`
		TrackableID   int64  `json:"trackable_id"`
		Title         string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.TrackableID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "trackable_id required"})
		return
	}
	tt := srs.TrackableType(req.TrackableType)
	if !tt.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "trackable_type must be entry or pattern"})
		return
	}

	item, created, err := s.engine.RegisterItem(tt, req.TrackableID, req.Title, time.Now().UTC())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]any{
		"item":    toItemJSON(item),
		"created": created,
	})
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}

	item, err := s.engine.DB.GetItem(id)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	decay := s.engine.Sched.EstimateDecay(*item, time.Now().UTC())
	writeJSON(w, http.StatusOK, map[string]any{
		"item": toItemJSON(*item),
		"decay": map[string]any{
			"retention_percent":    decay.RetentionPercent,
			"decay_score":          decay.DecayScore,
			"health_band":          string(decay.Band),
			"hours_until_critical": decay.HoursUntilCritical,
		},
	})
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}

	var req struct {
		Quality          *int `json:"quality"`
		TimeSpentSeconds int  `json:"time_spent_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Quality == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "quality required"})
		return
	}

	res, err := s.engine.SubmitReview(id, *req.Quality, req.TimeSpentSeconds, time.Now().UTC())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"item":           toItemJSON(res.Item),
		"message":        res.Message,
		"interval_days":  res.IntervalDays,
		"next_review_at": res.NextReviewAt.Format(time.RFC3339),
		"is_leech":       res.IsLeech,
	})
}

func (s *Server) itemAction(w http.ResponseWriter, r *http.Request, fn func(id int64) (srs.Item, error)) {
	id, err := itemID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}

	item, err := fn(id)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": toItemJSON(item)})
}

func (s *Server) handleSuspend(w http.ResponseWriter, r *http.Request) {
	s.itemAction(w, r, s.engine.Suspend)
}

func (s *Server) handleUnsuspend(w http.ResponseWriter, r *http.Request) {
	s.itemAction(w, r, func(id int64) (srs.Item, error) {
		return s.engine.Unsuspend(id, time.Now().UTC())
	})
}

func (s *Server) handleResetLeech(w http.ResponseWriter, r *http.Request) {
	s.itemAction(w, r, s.engine.ResetLeech)
}

func (s *Server) handleDecayOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.engine.DecayOverview(time.Now().UTC())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func (s *Server) handleCriticalItems(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	alerts, err := s.engine.CriticalItems(time.Now().UTC(), limit)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if alerts == nil {
		alerts = []engine.CriticalAlert{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 30)

	hm, err := s.engine.Heatmap(time.Now().UTC(), days)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hm)
}
