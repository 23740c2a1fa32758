package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"callcenter-platform/internal/auth"
	"callcenter-platform/internal/calendar"
	"callcenter-platform/internal/calls"
	"callcenter-platform/internal/config"
	"callcenter-platform/internal/conversations"
	"callcenter-platform/internal/metrics"
	"callcenter-platform/internal/selection"
	"callcenter-platform/internal/transcript"
	"callcenter-platform/internal/users"
	"callcenter-platform/pkg/logger"
	"callcenter-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const noModelIDMessage = "no model ID configured"

// CallSource is the upstream call data dependency (internal/synthflow in
// production, a fake in tests).
type CallSource interface {
	ListCalls(ctx context.Context, modelID string) ([]calls.Record, error)
}

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Auth          *auth.Manager
	Users         *users.Service
	Conversations *conversations.Service
	Calls         CallSource
	Selection     selection.Store
	Calendar      calendar.Store
	Google        config.GoogleConfig

	// Login throttling; RDB may be nil in tests, which disables the limit.
	RDB                *redis.Client
	LoginAttemptLimit  int
	LoginAttemptWindow time.Duration

	// clock is injectable for deterministic tests.
	Clock func() time.Time
}

func (h Handlers) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now()
}

/* ===================== AUTH ===================== */

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// CaptchaToken is accepted for client compatibility; verification is the
	// identity provider's concern and is not performed here.
	CaptchaToken string `json:"captcha_token"`
}

func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	if h.RDB != nil {
		ok, err := utils.AllowAttempt(c.Request.Context(), h.RDB, "login:"+req.Email, h.LoginAttemptLimit, h.LoginAttemptWindow)
		if err != nil {
			// Throttle unavailability must not lock everyone out.
			logger.FromGin(c).Warn("login throttle unavailable", "err", err)
		} else if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
			return
		}
	}

	u, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	tok, err := h.Auth.Issue(h.now(), u.ID, u.ModelID, u.Admin)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

func (h Handlers) Profile(c *gin.Context) {
	sess, err := auth.SessionFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}
	p, err := h.Users.ProfileByID(c.Request.Context(), sess.UserID)
	if errors.Is(err, users.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "profile lookup failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}

/* ===================== CALLS ===================== */

// filterFromQuery builds the view filter from query params. A preset token
// overrides explicit dates, mirroring the preset dropdown behavior.
func (h Handlers) filterFromQuery(c *gin.Context) calls.Filter {
	f := calls.Filter{SearchTerm: c.Query("search")}

	if preset := c.Query("preset"); preset != "" {
		f.From, f.To = calls.PresetRange(preset, h.now())
		return f
	}

	const dayLayout = "2006-01-02"
	if s := c.Query("start_date"); s != "" {
		if t, err := time.Parse(dayLayout, s); err == nil {
			f.From = t
		}
	}
	if s := c.Query("end_date"); s != "" {
		if t, err := time.Parse(dayLayout, s); err == nil {
			f.To = t
		}
	}
	return f
}

// fetchCalls pulls the session-scoped records, degrading upstream failure to
// an empty list (stale/empty is a displayable state, never a 5xx here).
func (h Handlers) fetchCalls(c *gin.Context, sess auth.Session) []calls.Record {
	records, err := h.Calls.ListCalls(c.Request.Context(), sess.ModelID)
	if err != nil {
		logger.FromGin(c).Warn("calls fetch failed", "err", err, "model_id", sess.ModelID)
		return []calls.Record{}
	}
	return records
}

func (h Handlers) ListCalls(c *gin.Context) {
	sess, err := auth.SessionFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}
	if sess.ModelID == "" {
		c.JSON(http.StatusOK, gin.H{"calls": []calls.Record{}, "message": noModelIDMessage})
		return
	}

	filtered := h.filterFromQuery(c).Apply(h.fetchCalls(c, sess))
	c.JSON(http.StatusOK, gin.H{"calls": filtered})
}

func (h Handlers) CallMetrics(c *gin.Context) {
	sess, err := auth.SessionFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}
	if sess.ModelID == "" {
		c.JSON(http.StatusOK, gin.H{"metrics": metrics.Summary{}, "proportion": [2]int{0, 0}, "message": noModelIDMessage})
		return
	}

	filtered := h.filterFromQuery(c).Apply(h.fetchCalls(c, sess))
	s := metrics.Aggregate(filtered)
	c.JSON(http.StatusOK, gin.H{"metrics": s, "proportion": s.Proportion()})
}

func (h Handlers) CallTranscript(c *gin.Context) {
	sess, err := auth.SessionFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}

	callID := c.Param("call_id")
	var found *calls.Record
	for _, r := range h.fetchCalls(c, sess) {
		if r.CallID == callID {
			found = &r
			break
		}
	}
	if found == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "call not found"})
		return
	}

	position, _ := strconv.ParseFloat(c.Query("position"), 64)
	duration, _ := strconv.ParseFloat(c.Query("duration"), 64)
	if duration <= 0 {
		duration = float64(found.DurationSeconds)
	}

	lines := transcript.Render(found.Transcript, c.Query("q"), position, duration)
	c.JSON(http.StatusOK, gin.H{"lines": lines})
}

/* ===================== SELECTION ===================== */

type selectionRequest struct {
	CallID string `json:"call_id"`
}

func (h Handlers) ToggleSelection(c *gin.Context) {
	sess, err := auth.SessionFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CallID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "call_id required"})
		return
	}

	selected, err := h.Selection.Toggle(c.Request.Context(), sess.TokenID, req.CallID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "selection update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected_call_id": selected})
}

func (h Handlers) GetSelection(c *gin.Context) {
	sess, err := auth.SessionFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}
	selected, err := h.Selection.Get(c.Request.Context(), sess.TokenID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "selection lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected_call_id": selected})
}

/* ===================== CONVERSATIONS (ADMIN) ===================== */

func (h Handlers) ListConversations(c *gin.Context) {
	sess, err := auth.SessionFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}

	out, err := h.Conversations.ListForModel(c.Request.Context(), sess.ModelID)
	if errors.Is(err, conversations.ErrNoModelID) {
		c.JSON(http.StatusOK, gin.H{"conversations": []conversations.Conversation{}, "message": noModelIDMessage})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "conversations lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": out})
}

/* ===================== GOOGLE CALENDAR ===================== */

func (h Handlers) GoogleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"API_KEY":        h.Google.APIKey,
		"CLIENT_ID":      h.Google.ClientID,
		"DISCOVERY_DOCS": h.Google.DiscoveryDocs,
		"SCOPES":         h.Google.Scopes,
	})
}

type googleUpdateRequest struct {
	GoogleAccessToken  string    `json:"googleAccessToken"`
	GoogleRefreshToken string    `json:"googleRefreshToken"`
	GoogleTokenExpiry  time.Time `json:"googleTokenExpiry"`
}

func (h Handlers) GoogleUpdate(c *gin.Context) {
	sess, err := auth.SessionFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}
	var req googleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	err = h.Users.UpdateGoogleTokens(c.Request.Context(), sess.UserID, users.GoogleTokens{
		AccessToken:  req.GoogleAccessToken,
		RefreshToken: req.GoogleRefreshToken,
		Expiry:       req.GoogleTokenExpiry,
	})
	if errors.Is(err, users.ErrInvalidArgument) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "googleAccessToken required"})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Google tokens updated"})
}

type normalizeRequest struct {
	Items []calendar.RawEvent `json:"items"`
}

// CalendarNormalize merges the locally-owned event collection (currently
// always empty) with the raw event items the client fetched, in
// concatenation order. The result replaces the session's stored events so
// GET /api/calendar/events can re-serve it.
func (h Handlers) CalendarNormalize(c *gin.Context) {
	sess, err := auth.SessionFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}
	var req normalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	events := calendar.Merge(nil, req.Items)
	if h.Calendar != nil {
		if err := h.Calendar.Save(c.Request.Context(), sess.TokenID, events); err != nil {
			// Storage is a convenience for re-serving; the normalized result
			// still goes back to the caller.
			logger.FromGin(c).Warn("calendar save failed", "err", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// CalendarEvents serves the merged normalized view the session last posted.
func (h Handlers) CalendarEvents(c *gin.Context) {
	sess, err := auth.SessionFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}
	if h.Calendar == nil {
		c.JSON(http.StatusOK, gin.H{"events": []calendar.Event{}})
		return
	}
	events, err := h.Calendar.List(c.Request.Context(), sess.TokenID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "calendar lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
