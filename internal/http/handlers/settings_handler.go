// Settings HTTP handlers.
//
// This file exposes REST endpoints for the bot configuration:
//   - GET    /settings                 (read, weak ETag support)
//   - POST   /settings                 (partial update or {"reset": true})
//   - GET    /settings/commands        (commands with their full usage)
//   - PATCH  /settings/commands/{key}  (enable/disable one command)
//   - GET    /settings/logs            (activity log, newest first)
//
// Handlers are transport-thin: they read input, call the settings store and
// translate results into HTTP responses. Writes honor Idempotency-Key replays.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/stella-panel/internal/domain"
	"github.com/tbourn/stella-panel/internal/http/middleware"
	"github.com/tbourn/stella-panel/internal/services"
	"github.com/tbourn/stella-panel/internal/utils"
)

// HeaderIdempotentReplay marks responses served from the idempotency ledger.
const HeaderIdempotentReplay = "Idempotent-Replay"

//
// Service contracts (context-aware)
//

// SettingsService defines the configuration operations consumed by handlers.
// Implementations must be safe for concurrent use.
type SettingsService interface {
	// ReadRevision returns the current record and its revision.
	ReadRevision(ctx context.Context) (domain.Settings, uint64)
	// Apply parses a raw body and resets or merges accordingly.
	Apply(ctx context.Context, body []byte) (domain.Settings, error)
	// SetCommandEnabled toggles a single command by key.
	SetCommandEnabled(ctx context.Context, key string, enabled bool) (domain.Settings, error)
}

// ReplayService remembers and returns responses of completed writes.
type ReplayService interface {
	Lookup(ctx context.Context, scope, key string) (*domain.Idempotency, error)
	Remember(ctx context.Context, scope, key string, status int, body []byte) error
}

//
// Handler wiring
//

// Handlers groups the settings endpoints.
type Handlers struct {
	settings SettingsService
	replay   ReplayService // optional

	// etagSeed distinguishes revisions across process restarts.
	etagSeed string
}

// New constructs a Handlers instance. replay may be nil to disable
// idempotent replays.
func New(settings SettingsService, replay ReplayService) *Handlers {
	return &Handlers{
		settings: settings,
		replay:   replay,
		etagSeed: uuid.NewString()[:8],
	}
}

//
// DTOs
//

// CommandsResponse lists commands with their invocation under the active prefix.
type CommandsResponse struct {
	Prefix   string                `json:"prefix" example:"!"`
	Commands []domain.CommandUsage `json:"commands"`
}

// LogsResponse wraps a slice of the activity log.
type LogsResponse struct {
	Logs  []domain.LogEntry `json:"logs"`
	Total int               `json:"total" example:"12"`
}

// ToggleCommandRequest is the JSON payload for enabling/disabling a command.
type ToggleCommandRequest struct {
	Enabled *bool `json:"enabled" binding:"required" example:"false"`
}

//
// Helpers
//

func (h *Handlers) etag(rev uint64) string {
	return fmt.Sprintf(`W/"settings:%s:%d"`, h.etagSeed, rev)
}

// etagMatches reports whether an If-None-Match header value matches etag.
// The header may list several tags or be "*". Comparison is weak, so a W/
// prefix on either side is ignored.
func etagMatches(header, etag string) bool {
	want := strings.TrimPrefix(etag, "W/")
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || (tag != "" && strings.TrimPrefix(tag, "W/") == want) {
			return true
		}
	}
	return false
}

// serveReplay writes the remembered response for a replayed request and
// reports whether it did. Lookup failures fall through to normal processing.
func (h *Handlers) serveReplay(c *gin.Context) bool {
	if h.replay == nil || !middleware.IsReplay(c) {
		return false
	}
	key, _ := middleware.GetIdempotencyKey(c)
	rec, err := h.replay.Lookup(c.Request.Context(), middleware.IdempotencyScope(c), key)
	if err != nil || rec == nil {
		return false
	}
	c.Header(HeaderIdempotentReplay, "true")
	okRaw(c, rec.Status, rec.Body)
	return true
}

// respondWrite encodes s, remembers it under the request's Idempotency-Key
// (if any) and writes it.
func (h *Handlers) respondWrite(c *gin.Context, s domain.Settings) {
	body, err := json.Marshal(s)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "encode settings")
		return
	}
	if key, has := middleware.GetIdempotencyKey(c); has && h.replay != nil {
		if err := h.replay.Remember(c.Request.Context(), middleware.IdempotencyScope(c), key, http.StatusOK, body); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("remember idempotent response")
		}
	}
	okRaw(c, http.StatusOK, body)
}

//
// Handlers
//

// GetSettings godoc
// @ID          getSettings
// @Summary     Read the bot configuration
// @Description Returns the full configuration record. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Settings
// @Produce     json
//
// @Param       If-None-Match  header  string  false  "Return 304 if any listed ETag matches, or on *"
//
// @Success     200  {object}  domain.Settings
// @Header      200  {string}  ETag  "Weak ETag for the current revision"
// @Success     304  {string}  string  "Not Modified"
// @Router      /settings [get]
func (h *Handlers) GetSettings(c *gin.Context) {
	s, rev := h.settings.ReadRevision(c.Request.Context())

	etag := h.etag(rev)
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")
	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	ok(c, http.StatusOK, s)
}

// PostSettings godoc
// @ID          postSettings
// @Summary     Update or reset the bot configuration
// @Description Body {"reset": true} restores defaults. Any other JSON value is merged: only botName, prefix, welcomeMessage, autoReply, status (strings) and commands (array) are applied; unknown or mistyped keys are ignored.
// @Tags        Settings
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string          false  "Replay-safe retry key"
// @Param       body             body    domain.Settings  true   "Partial settings or {\"reset\": true}"
//
// @Success     200  {object}  domain.Settings
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid JSON"
// @Failure     413  {object}  handlers.ErrorResponse  "Payload too large"
// @Router      /settings [post]
func (h *Handlers) PostSettings(c *gin.Context) {
	if h.serveReplay(c) {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			fail(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "request body too large")
			return
		}
		fail(c, http.StatusBadRequest, ErrCodeInvalidInput, "unreadable request body")
		return
	}

	s, err := h.settings.Apply(c.Request.Context(), body)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		fail(c, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid JSON")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	h.respondWrite(c, s)
}

// ListCommands godoc
// @ID          listCommands
// @Summary     List commands with usage
// @Description Returns every command together with its invocation under the active prefix.
// @Tags        Commands
// @Produce     json
// @Success     200  {object}  handlers.CommandsResponse
// @Router      /settings/commands [get]
func (h *Handlers) ListCommands(c *gin.Context) {
	s, _ := h.settings.ReadRevision(c.Request.Context())
	ok(c, http.StatusOK, CommandsResponse{Prefix: s.Prefix, Commands: s.CommandUsages()})
}

// ToggleCommand godoc
// @ID          toggleCommand
// @Summary     Enable or disable a command
// @Description Sets enabled on the first command whose key matches case-insensitively and returns the full configuration.
// @Tags        Commands
// @Accept      json
// @Produce     json
//
// @Param       key              path    string                         true   "Command key"  example(ping)
// @Param       Idempotency-Key  header  string                         false  "Replay-safe retry key"
// @Param       body             body    handlers.ToggleCommandRequest  true   "New state"
//
// @Success     200  {object}  domain.Settings
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid body"
// @Failure     404  {object}  handlers.ErrorResponse  "Command not found"
// @Router      /settings/commands/{key} [patch]
func (h *Handlers) ToggleCommand(c *gin.Context) {
	if h.serveReplay(c) {
		return
	}

	var req ToggleCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidInput, "enabled (boolean) required")
		return
	}

	s, err := h.settings.SetCommandEnabled(c.Request.Context(), c.Param("key"), *req.Enabled)
	switch {
	case errors.Is(err, services.ErrCommandNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "command not found")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	h.respondWrite(c, s)
}

// ListLogs godoc
// @ID          listLogs
// @Summary     Read the activity log
// @Description Returns the most recent configuration changes, newest first.
// @Tags        Logs
// @Produce     json
// @Param       limit  query  int  false  "Max entries"  minimum(1) maximum(50) default(50)
// @Success     200  {object}  handlers.LogsResponse
// @Router      /settings/logs [get]
func (h *Handlers) ListLogs(c *gin.Context) {
	limit := utils.ClampInt(utils.AtoiDefault(c.Query("limit"), domain.MaxLogEntries), 1, domain.MaxLogEntries)

	s, _ := h.settings.ReadRevision(c.Request.Context())
	logs := s.Logs
	if len(logs) > limit {
		logs = logs[:limit]
	}
	ok(c, http.StatusOK, LogsResponse{Logs: logs, Total: len(s.Logs)})
}
