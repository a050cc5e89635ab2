// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the panel's default access logger.
// It never logs bodies. Query strings and header values are scrubbed of
// Telegram bot tokens, UUIDs, e-mail addresses and phone numbers, and
// credential headers are masked entirely. It also attaches the
// request-scoped logger used by handlers (LoggerFrom) and services
// (zerolog.Ctx).
//
// Usage:
//
//	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
//	    MaskHeaders: []string{"X-API-Key"},
//	}))
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RedactOptions configures additional scrub behavior for RedactingLogger.
//
// MaskHeaders lists extra header names (case-insensitive) whose values are
// replaced with "[REDACTED]", on top of the built-in credential headers.
type RedactOptions struct {
	MaskHeaders []string
}

// builtinMaskedHeaders are always masked.
var builtinMaskedHeaders = []string{
	"Authorization",
	"Cookie",
	"Set-Cookie",
	"X-Telegram-Bot-Api-Secret-Token",
}

// scrubRule replaces every match of re with label.
type scrubRule struct {
	re    *regexp.Regexp
	label string
}

// scrubber applies its rules in order. Bot tokens and UUIDs run before the
// phone rule, which would otherwise claim their digit runs.
type scrubber []scrubRule

func newScrubber() scrubber {
	return scrubber{
		// Telegram bot tokens look like "123456789:AAE...".
		{regexp.MustCompile(`\b\d{5,12}:[A-Za-z0-9_-]{30,}\b`), "[REDACTED:bot_token]"},
		{regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`), "[REDACTED:id]"},
		{regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`), "[REDACTED:email]"},
		// Digits only, so hex runs are never taken for phone numbers.
		{regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`), "[REDACTED:phone]"},
	}
}

func (s scrubber) String(in string) string {
	if in == "" {
		return in
	}
	for _, r := range s {
		in = r.re.ReplaceAllString(in, r.label)
	}
	return in
}

// RedactingLogger returns a Gin middleware that emits one "http_request" line
// per request with method, route, scrubbed query and headers, status, size
// and latency. Level is info, warn for 4xx and error for 5xx. Unsafe requests
// also report whether they carried an Idempotency-Key and were replays.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	scrub := newScrubber()

	masked := make(map[string]struct{}, len(builtinMaskedHeaders)+len(opts.MaskHeaders))
	for _, h := range append(append([]string(nil), builtinMaskedHeaders...), opts.MaskHeaders...) {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			masked[h] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		headers := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := masked[strings.ToLower(k)]; ok {
				headers[k] = "[REDACTED]"
				continue
			}
			headers[k] = scrub.String(strings.Join(vv, ", "))
		}

		reqID := c.Writer.Header().Get(requestIDHeader)
		if reqID == "" {
			reqID = c.GetHeader(requestIDHeader)
		}

		l := log.With().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Logger()
		attachLogger(c, &l)

		c.Next()

		status := c.Writer.Status()
		ev := l.Info()
		switch {
		case status >= 500:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		}
		withIdempotency(ev, c).
			Str("query", scrub.String(c.Request.URL.RawQuery)).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Msg("http_request")
	}
}
