// Package domain defines the bot configuration record served by the panel:
// the settings themselves, the command descriptors, and the activity log.
// These types are shared by the service, repository and HTTP layers and their
// JSON field names are part of the public wire contract.
package domain

// MaxLogEntries bounds the activity log; older entries are dropped first.
const MaxLogEntries = 50

// Log messages appended by the settings store. They are part of the wire
// contract consumed by the dashboard, so they must not be translated.
const (
	LogMessageUpdated = "Settings diperbarui dari panel"
	LogMessageReset   = "Settings di-reset ke default"
)

// LogTimeLayout renders log timestamps as ISO-8601 UTC with milliseconds.
const LogTimeLayout = "2006-01-02T15:04:05.000Z"

// Command describes one togglable bot command.
//
// Fields:
//   - Key: command identifier without prefix (e.g. "ping"); unique by convention only.
//   - Description: human-readable help text.
//   - Enabled: whether the bot answers this command.
type Command struct {
	Key         string `json:"key"         example:"ping"`
	Description string `json:"description" example:"Cek respon bot"`
	Enabled     bool   `json:"enabled"     example:"true"`
}

// LogEntry is one timestamped notice of a configuration change.
// Entries are never mutated after creation.
type LogEntry struct {
	Time    string `json:"time"    example:"2025-01-02T03:04:05.678Z"`
	Message string `json:"message" example:"Settings diperbarui dari panel"`
}

// Settings is the single configuration record of the bot.
//
// Commands and Logs are always non-nil so they serialize as JSON arrays.
// Logs are ordered newest first and hold at most MaxLogEntries items.
type Settings struct {
	Status         string     `json:"status"         example:"online"`
	BotName        string     `json:"botName"        example:"Stella Bot"`
	Prefix         string     `json:"prefix"         example:"!"`
	WelcomeMessage string     `json:"welcomeMessage" example:"Halo, aku Stella Bot. Siap membantu ✨"`
	AutoReply      string     `json:"autoReply"      example:"Terima kasih, pesannya sudah diterima."`
	Commands       []Command  `json:"commands"`
	Logs           []LogEntry `json:"logs"`
}

// defaultSettings is the template used on start-up and reset. It is only
// ever read through DefaultSettings, which hands out independent copies.
var defaultSettings = Settings{
	Status:         "online",
	BotName:        "Stella Bot",
	Prefix:         "!",
	WelcomeMessage: "Halo, aku Stella Bot. Siap membantu ✨",
	AutoReply:      "Terima kasih, pesannya sudah diterima.",
	Commands: []Command{
		{Key: "ping", Description: "Cek respon bot", Enabled: true},
		{Key: "welcome", Description: "Kirim pesan sambutan", Enabled: true},
	},
	Logs: []LogEntry{},
}

// DefaultSettings returns a deep copy of the default configuration record.
func DefaultSettings() Settings { return defaultSettings.Clone() }

// Clone returns a deep copy of s. Mutating the copy's slices never affects s.
func (s Settings) Clone() Settings {
	out := s
	out.Commands = make([]Command, len(s.Commands))
	copy(out.Commands, s.Commands)
	out.Logs = make([]LogEntry, len(s.Logs))
	copy(out.Logs, s.Logs)
	return out
}

// PrependLog inserts e at the head of the log and drops entries beyond
// MaxLogEntries from the tail.
func (s *Settings) PrependLog(e LogEntry) {
	n := len(s.Logs) + 1
	if n > MaxLogEntries {
		n = MaxLogEntries
	}
	logs := make([]LogEntry, 0, n)
	logs = append(logs, e)
	logs = append(logs, s.Logs[:n-1]...)
	s.Logs = logs
}

// CommandUsage is a Command paired with its invocation string under the
// active prefix (e.g. "!ping").
type CommandUsage struct {
	Command
	Usage string `json:"usage" example:"!ping"`
}

// CommandUsages renders every command with the record's current prefix.
func (s Settings) CommandUsages() []CommandUsage {
	out := make([]CommandUsage, 0, len(s.Commands))
	for _, c := range s.Commands {
		out = append(out, CommandUsage{Command: c, Usage: s.Prefix + c.Key})
	}
	return out
}
