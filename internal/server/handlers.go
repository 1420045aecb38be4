package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sells-group/creativesync/internal/dashboard"
	"github.com/sells-group/creativesync/internal/export"
	"github.com/sells-group/creativesync/internal/fallback"
	"github.com/sells-group/creativesync/internal/generate"
	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/internal/scorer"
	"github.com/sells-group/creativesync/internal/store"
	"github.com/sells-group/creativesync/internal/trends"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// fail maps domain errors onto HTTP statuses.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, generate.ErrMissingBrief), errors.Is(err, store.ErrUnknownSetting):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound), errors.Is(err, trends.ErrUnknownTrend):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		zap.L().Error("server: request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// --- Campaigns ---

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var b model.Brief
	if !decode(w, r, &b) {
		return
	}
	c, err := s.gen.Campaign(r.Context(), b)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleSaveCampaign(w http.ResponseWriter, r *http.Request) {
	var c model.Campaign
	if !decode(w, r, &c) {
		return
	}
	if strings.TrimSpace(c.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if c.Name == "" {
		c.Name = c.Brief.Name
	}
	if c.Metrics == (model.Metrics{}) {
		c.Metrics = dashboard.Simulate(s.rng)
	}
	if err := s.store.SaveCampaign(r.Context(), &c); err != nil {
		fail(w, r, err)
		return
	}
	s.campaignsChanged(r)
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.CampaignFilter{
		Query:  q.Get("q"),
		Status: model.CampaignStatus(q.Get("status")),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = n
	}

	campaigns, err := s.store.ListCampaigns(r.Context(), filter)
	if err != nil {
		fail(w, r, err)
		return
	}
	if campaigns == nil {
		campaigns = []model.Campaign{}
	}
	writeJSON(w, http.StatusOK, campaigns)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDuplicateCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.DuplicateCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	s.campaignsChanged(r)
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCampaign(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	s.campaignsChanged(r)
	w.WriteHeader(http.StatusNoContent)
}

// campaignsChanged refreshes the active counter; a failure only costs a stale tile.
func (s *Server) campaignsChanged(r *http.Request) {
	if err := s.refreshActive(r.Context()); err != nil {
		zap.L().Warn("server: refresh dashboard", zap.Error(err))
	}
}

// --- Generation ---

type variantsResponse struct {
	Variants []model.Variant       `json:"variants"`
	Summary  export.VariantSummary `json:"summary"`
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	var b model.Brief
	if !decode(w, r, &b) {
		return
	}
	variants, err := s.gen.Variants(r.Context(), b)
	if err != nil {
		fail(w, r, err)
		return
	}
	profile, err := s.store.GetProfile(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, variantsResponse{
		Variants: variants,
		Summary:  export.SummarizeVariants(b, variants, *profile, s.now()),
	})
}

type variantExportRequest struct {
	Brief    model.Brief     `json:"brief"`
	Variants []model.Variant `json:"variants"`
}

func (s *Server) handleExportVariants(w http.ResponseWriter, r *http.Request) {
	f, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil || (f != export.FormatJSON && f != export.FormatCSV) {
		writeError(w, http.StatusBadRequest, "variant summaries export as json or csv")
		return
	}
	var req variantExportRequest
	if !decode(w, r, &req) {
		return
	}
	profile, err := s.store.GetProfile(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	now := s.now()
	summary := export.SummarizeVariants(req.Brief, req.Variants, *profile, now)
	attach(w, f, export.Filename("creativesync-variants", f, now))
	if f == export.FormatCSV {
		err = export.VariantSummaryCSV(w, summary)
	} else {
		err = export.VariantSummaryJSON(w, summary)
	}
	if err != nil {
		zap.L().Warn("server: write variant export", zap.Error(err))
	}
}

type scoreRequest struct {
	Text     string         `json:"text"`
	Platform model.Platform `json:"platform"`
	Audience model.Audience `json:"target_audience"`
	Tone     model.Tone     `json:"tone"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decode(w, r, &req) {
		return
	}
	in := scorer.Input{Text: req.Text, Platform: req.Platform, Audience: req.Audience, Tone: req.Tone}
	writeJSON(w, http.StatusOK, scorer.Score(in, s.rng))
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decode(w, r, &req) {
		return
	}
	saved, active, err := store.Totals(r.Context(), s.store)
	if err != nil {
		fail(w, r, err)
		return
	}
	counters := s.Dashboard().Metrics
	reply := s.gen.Chat(r.Context(), req.Message, fallback.ChatContext{
		SavedCampaigns:  saved,
		ActiveCampaigns: active,
		Metrics: model.Metrics{
			Impressions: counters.Impressions,
			Clicks:      counters.Clicks,
			CTR:         counters.CTR,
		},
	})
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// --- Trends ---

func (s *Server) handleListTrends(w http.ResponseWriter, r *http.Request) {
	ts, err := trends.List(s.now())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

type applyTrendRequest struct {
	Title string      `json:"title"`
	Brief model.Brief `json:"brief"`
}

func (s *Server) handleApplyTrend(w http.ResponseWriter, r *http.Request) {
	var req applyTrendRequest
	if !decode(w, r, &req) {
		return
	}
	b, err := trends.Apply(req.Title, req.Brief)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// --- Dashboard and exports ---

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tick())
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	s.themeMu.Lock()
	defer s.themeMu.Unlock()

	next := dashboard.Reduce(s.Dashboard(), dashboard.ToggleTheme{}).Theme
	if err := s.store.SetSetting(r.Context(), store.SettingTheme, next); err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Dispatch(dashboard.SetTheme{Theme: next}))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := s.now()
	report, err := export.Load(r.Context(), s.store, s.Dashboard().Metrics, now)
	if err != nil {
		fail(w, r, err)
		return
	}

	attach(w, f, export.Filename(export.ReportName(f), f, now))
	if err := export.Write(w, f, report); err != nil {
		zap.L().Warn("server: write export", zap.String("format", string(f)), zap.Error(err))
	}
}

func attach(w http.ResponseWriter, f export.Format, filename string) {
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
}

// --- Profile and settings ---

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProfile(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var p model.Profile
	if !decode(w, r, &p) {
		return
	}
	if p.Industry == "" {
		p.Industry = model.DefaultIndustry
	}
	if err := s.store.SaveProfile(r.Context(), p); err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type settingBody struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	v, err := s.store.GetSetting(r.Context(), key)
	if err != nil {
		fail(w, r, err)
		return
	}
	if key == store.SettingGeminiAPIKey {
		v = Mask(v)
	}
	writeJSON(w, http.StatusOK, settingBody{Key: key, Value: v})
}

func (s *Server) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var body settingBody
	if !decode(w, r, &body) {
		return
	}
	value := strings.TrimSpace(body.Value)
	if err := store.ValidateSetting(key, value); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.SetSetting(r.Context(), key, value); err != nil {
		fail(w, r, err)
		return
	}
	switch key {
	case store.SettingTheme:
		s.Dispatch(dashboard.SetTheme{Theme: value})
	case store.SettingGeminiAPIKey:
		if s.keyed != nil {
			if p := s.keyed(value); p != nil {
				s.gen.SetProvider(p)
				zap.L().Info("server: generation provider updated", zap.String("provider", p.Name()))
			}
		}
		value = Mask(value)
	}
	writeJSON(w, http.StatusOK, settingBody{Key: key, Value: value})
}

// Mask hides all but the last four characters of a secret.
func Mask(secret string) string {
	r := []rune(secret)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}
