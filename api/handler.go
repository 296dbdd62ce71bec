package api

import (
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"phonegen/core/artifact"
	"phonegen/core/generate"
	"phonegen/db"
	"phonegen/internal/config"
	"phonegen/internal/errors"
	"phonegen/internal/logging"
)

// provincesCacheKey is the lookup cache key for the province list.
const provincesCacheKey = "provinces"

// Handler handles generation requests
type Handler struct {
	cfg      *config.Config
	store    db.SegmentStore
	sessions *Sessions
	logins   *loginLimiter
	lookups  *gocache.Cache
	log      *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(cfg *config.Config, store db.SegmentStore) *Handler {
	return &Handler{
		cfg:      cfg,
		store:    store,
		sessions: NewSessions(time.Duration(cfg.Login.SessionTTLMinutes) * time.Minute),
		logins:   newLoginLimiter(1, 5),
		lookups:  gocache.New(5*time.Minute, 10*time.Minute),
		log:      logging.Logger,
	}
}

// HandleLogin handles POST /api/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	addr, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		addr = r.RemoteAddr
	}
	if !h.logins.Allow(addr) {
		h.writeError(w, http.StatusTooManyRequests, "too many login attempts, slow down")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.cfg.ValidateLogin(strings.TrimSpace(req.Username), strings.TrimSpace(req.Password)) {
		h.writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token := h.sessions.Issue(req.Username)
	setSessionCookie(w, token, time.Duration(h.cfg.Login.SessionTTLMinutes)*time.Minute)
	h.log.Info("login", zap.String("username", req.Username))
	h.writeJSON(w, http.StatusOK, Envelope{Code: http.StatusOK, Message: "login successful"})
}

// HandleLogout handles GET /api/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		h.sessions.Revoke(cookie.Value)
	}
	clearSessionCookie(w)
	h.writeJSON(w, http.StatusOK, Envelope{Code: http.StatusOK, Message: "logged out"})
}

// HandleProvinces handles GET /api/provinces
func (h *Handler) HandleProvinces(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.lookups.Get(provincesCacheKey); ok {
		h.writeJSON(w, http.StatusOK, Envelope{Code: http.StatusOK, Data: cached})
		return
	}

	provinces, err := h.store.Provinces(r.Context())
	if err != nil {
		h.log.Error("province lookup failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	h.lookups.SetDefault(provincesCacheKey, provinces)
	h.writeJSON(w, http.StatusOK, Envelope{Code: http.StatusOK, Data: provinces})
}

// HandleCities handles GET /api/cities/{province}
func (h *Handler) HandleCities(w http.ResponseWriter, r *http.Request) {
	province := r.PathValue("province")
	if province == "" {
		h.writeError(w, http.StatusBadRequest, "province is required")
		return
	}

	cities, err := h.store.Cities(r.Context(), province)
	if err != nil {
		h.log.Error("city lookup failed", zap.String("province", province), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	h.writeJSON(w, http.StatusOK, Envelope{Code: http.StatusOK, Data: cities})
}

// HandleGenerate handles POST /api/generate
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	filter := req.Filter(h.cfg.Generator.MaxCount)
	if err := filter.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, userMessage(err))
		return
	}

	segments, err := h.store.FindSegments(r.Context(), filter.Prefix, filter.Province, filter.City, filter.Operators)
	if err != nil {
		h.log.Error("segment lookup failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}
	if len(segments) == 0 {
		h.writeError(w, http.StatusNotFound, "no matching numbers found")
		return
	}

	session := generate.NewSession(generate.Options{
		MaxCount: h.cfg.Generator.MaxCount,
		Workers:  h.cfg.Generator.Workers,
	})
	identifiers, err := session.Generate(r.Context(), filter, segments)
	if err != nil {
		if errors.IsType(err, errors.TypeOverCapacity) {
			h.writeError(w, http.StatusBadRequest, userMessage(err))
			return
		}
		h.log.Error("generation failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	name := artifact.UniqueName(h.cfg.Download.Dir, artifact.FileName(filter, time.Now()))
	art, err := artifact.Write(identifiers, h.cfg.Download.Dir, name)
	if err != nil {
		h.log.Error("artifact write failed", zap.String("name", name), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	parts, err := artifact.Partition(art, h.cfg.PartitionSizeLimit())
	if err != nil {
		h.log.Error("artifact partition failed", zap.String("name", name), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	files := make([]FileInfo, len(parts))
	for i, p := range parts {
		files[i] = FileInfo{
			Name: p.Name,
			Size: artifact.FormatSize(p.SizeBytes),
			URL:  "/download/" + p.Name,
		}
	}

	h.log.Info("generation complete",
		zap.String("prefix", filter.Prefix),
		zap.String("city", filter.City),
		zap.Int("count", len(identifiers)),
		zap.Int("files", len(files)))

	h.writeJSON(w, http.StatusOK, Envelope{
		Code:    http.StatusOK,
		Message: "generation successful",
		Data:    GenerateData{Count: len(identifiers), Files: files},
	})
}

// HandleDownload handles GET /download/{filename}
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")
	if name == "" || name != filepath.Base(name) {
		h.writeError(w, http.StatusBadRequest, "invalid file name")
		return
	}

	path := filepath.Join(h.cfg.Download.Dir, name)
	if _, err := os.Stat(path); err != nil {
		h.writeError(w, http.StatusNotFound, userMessage(errors.ArtifactExpired(name)))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, path)
}

// HandleCleanup handles POST /api/cleanup
func (h *Handler) HandleCleanup(w http.ResponseWriter, r *http.Request) {
	maxAge := time.Duration(h.cfg.Download.ExpireHours) * time.Hour
	deleted, err := artifact.Sweep(h.cfg.Download.Dir, maxAge)
	if err != nil {
		h.log.Error("cleanup failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "cleanup failed")
		return
	}

	h.log.Info("cleanup complete", zap.Int("deleted", deleted))
	h.writeJSON(w, http.StatusOK, Envelope{
		Code:    http.StatusOK,
		Message: "cleanup complete",
		Data:    CleanupData{Deleted: deleted},
	})
}

// requireLogin wraps next with session enforcement when login is enabled.
func (h *Handler) requireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.cfg.Login.Enabled {
			next(w, r)
			return
		}
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			h.writeError(w, http.StatusUnauthorized, "login required")
			return
		}
		if _, ok := h.sessions.Username(cookie.Value); !ok {
			h.writeError(w, http.StatusUnauthorized, "session expired, login again")
			return
		}
		next(w, r)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, Envelope{Code: status, Message: message})
}

// userMessage strips the internal type tag off domain errors shown to users.
func userMessage(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
