// Package services – SettingsStore
//
// SettingsStore is the single source of truth for the bot configuration. It
// holds one mutable record plus its activity log and exposes read, merge,
// reset and command-toggle operations. The record lives only in memory: a
// process restart starts again from domain.DefaultSettings.
//
// All operations serialize on one RWMutex. Input is parsed before the lock is
// taken so a rejected request never observes or changes state.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"

	"github.com/tbourn/stella-panel/internal/domain"
)

const tracerName = "services/SettingsStore"

// SettingsStore guards the live configuration record.
// The zero value is not usable; construct with NewSettingsStore.
type SettingsStore struct {
	// Now supplies log timestamps. Defaults to time.Now.
	Now func() time.Time

	mu  sync.RWMutex
	cur domain.Settings
	rev uint64
}

// NewSettingsStore returns a store initialized with a fresh copy of the
// default configuration.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		Now: time.Now,
		cur: domain.DefaultSettings(),
	}
}

// Read returns a copy of the current record. It has no side effects.
func (s *SettingsStore) Read(ctx context.Context) domain.Settings {
	out, _ := s.ReadRevision(ctx)
	return out
}

// ReadRevision returns a copy of the current record together with the
// revision it was taken at. The revision increases on every mutation.
func (s *SettingsStore) ReadRevision(_ context.Context) (domain.Settings, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Clone(), s.rev
}

// Revision returns the current mutation counter.
func (s *SettingsStore) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// Apply parses a raw request body and performs either Reset (when "reset"
// is true) or Update. It fails with ErrInvalidInput when body is not a JSON
// object, leaving the store untouched.
func (s *SettingsStore) Apply(ctx context.Context, body []byte) (domain.Settings, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "Apply",
		trace.WithAttributes(attribute.Int("body.bytes", len(body))),
	)
	defer span.End()

	req, err := ParseRequest(body)
	if err != nil {
		span.RecordError(err)
		return domain.Settings{}, err
	}
	span.SetAttributes(attribute.Bool("settings.reset", req.Reset))
	if req.Reset {
		return s.Reset(ctx), nil
	}
	return s.Update(ctx, req.Patch), nil
}

// Update overwrites the fields present in p, appends the update notice to the
// log and returns the resulting record. An empty patch still logs.
func (s *SettingsStore) Update(ctx context.Context, p Patch) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Status != nil {
		s.cur.Status = *p.Status
	}
	if p.BotName != nil {
		s.cur.BotName = *p.BotName
	}
	if p.Prefix != nil {
		s.cur.Prefix = *p.Prefix
	}
	if p.WelcomeMessage != nil {
		s.cur.WelcomeMessage = *p.WelcomeMessage
	}
	if p.AutoReply != nil {
		s.cur.AutoReply = *p.AutoReply
	}
	if p.HasCommands {
		cmds := make([]domain.Command, len(p.Commands))
		copy(cmds, p.Commands)
		s.cur.Commands = cmds
	}

	s.commitLocked(ctx, opUpdate, domain.LogMessageUpdated)
	return s.cur.Clone()
}

// Reset replaces the whole record, log included, with a fresh copy of the
// defaults and then records the reset notice. It always succeeds.
func (s *SettingsStore) Reset(ctx context.Context) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = domain.DefaultSettings()
	s.commitLocked(ctx, opReset, domain.LogMessageReset)
	return s.cur.Clone()
}

// SetCommandEnabled sets Enabled on the first command whose key matches key
// under Unicode case folding. It returns ErrCommandNotFound without logging
// when nothing matches.
func (s *SettingsStore) SetCommandEnabled(ctx context.Context, key string, enabled bool) (domain.Settings, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "SetCommandEnabled",
		trace.WithAttributes(
			attribute.String("command.key", key),
			attribute.Bool("command.enabled", enabled),
		),
	)
	defer span.End()

	fold := cases.Fold()
	want := fold.String(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.cur.Commands {
		if fold.String(c.Key) == want {
			idx = i
			break
		}
	}
	if idx < 0 {
		span.RecordError(ErrCommandNotFound)
		return domain.Settings{}, ErrCommandNotFound
	}

	// Copy-on-write so previously returned snapshots never change.
	cmds := make([]domain.Command, len(s.cur.Commands))
	copy(cmds, s.cur.Commands)
	cmds[idx].Enabled = enabled
	s.cur.Commands = cmds

	s.commitLocked(ctx, opToggle, domain.LogMessageUpdated)
	return s.cur.Clone(), nil
}

// commitLocked appends msg to the log, bumps the revision and publishes
// metrics. Callers must hold s.mu for writing.
func (s *SettingsStore) commitLocked(ctx context.Context, op, msg string) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	s.cur.PrependLog(domain.LogEntry{
		Time:    now().UTC().Format(domain.LogTimeLayout),
		Message: msg,
	})
	s.rev++

	settingsMutations.WithLabelValues(op).Inc()
	settingsLogEntries.Set(float64(len(s.cur.Logs)))

	zerolog.Ctx(ctx).Debug().
		Str("op", op).
		Uint64("revision", s.rev).
		Int("log_entries", len(s.cur.Logs)).
		Msg("settings changed")
}
