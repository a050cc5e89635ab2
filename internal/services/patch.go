// Package services – patch decoding
//
// A Patch is decoded from a raw JSON body with gjson rather than
// encoding/json so that each recognized key can be checked for presence and
// JSON type independently: a key whose value has the wrong type is dropped
// on its own instead of failing the whole request.
package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tbourn/stella-panel/internal/domain"
)

// utf8BOM is tolerated at the start of a request body.
var utf8BOM = []byte("\xef\xbb\xbf")

// Patch is a partial settings record. Nil fields are left untouched by
// SettingsStore.Update.
type Patch struct {
	Status         *string
	BotName        *string
	Prefix         *string
	WelcomeMessage *string
	AutoReply      *string
	Commands       []domain.Command // nil means absent; empty means "clear"
	HasCommands    bool
}

// Empty reports whether the patch carries no recognized field.
func (p Patch) Empty() bool {
	return p.Status == nil && p.BotName == nil && p.Prefix == nil &&
		p.WelcomeMessage == nil && p.AutoReply == nil && !p.HasCommands
}

// Request is a decoded POST body: either a reset or a patch.
type Request struct {
	Reset bool
	Patch Patch
}

// ParseRequest decodes body into a Request.
//
// Malformed JSON and a top-level null yield ErrInvalidInput. Any other JSON
// value is accepted; arrays and scalars carry no fields and decode to an
// empty patch. Reset is set only when "reset" is the literal true. When a key
// repeats, its last occurrence wins. Unknown keys are ignored.
func ParseRequest(body []byte) (Request, error) {
	body = bytes.TrimPrefix(body, utf8BOM)
	if !gjson.ValidBytes(body) {
		return Request{}, fmt.Errorf("%w: malformed JSON", ErrInvalidInput)
	}
	root := gjson.ParseBytes(body)
	if root.Type == gjson.Null {
		return Request{}, fmt.Errorf("%w: body is null", ErrInvalidInput)
	}

	var req Request
	if !root.IsObject() {
		return req, nil
	}
	fields := lastValues(root)

	req.Reset = fields["reset"].Type == gjson.True

	p := &req.Patch
	p.Status = stringField(fields, "status")
	p.BotName = stringField(fields, "botName")
	p.Prefix = stringField(fields, "prefix")
	p.WelcomeMessage = stringField(fields, "welcomeMessage")
	p.AutoReply = stringField(fields, "autoReply")
	p.Commands, p.HasCommands = commandsField(fields, "commands")

	return req, nil
}

// lastValues walks obj once and keeps the last value seen for each key.
// gjson's Get would return the first.
func lastValues(obj gjson.Result) map[string]gjson.Result {
	out := make(map[string]gjson.Result)
	obj.ForEach(func(k, v gjson.Result) bool {
		out[k.String()] = v
		return true
	})
	return out
}

// stringField returns the value of key when it is a JSON string. Invalid
// UTF-8 is replaced with U+FFFD.
func stringField(fields map[string]gjson.Result, key string) *string {
	v, ok := fields[key]
	if !ok || v.Type != gjson.String {
		return nil
	}
	s := validUTF8(v.String())
	return &s
}

// commandsField decodes key as a list of command descriptors. The field is
// reported absent when it is not an array or when any element is not an
// object. Element members of the wrong type fall back to their zero value.
func commandsField(fields map[string]gjson.Result, key string) ([]domain.Command, bool) {
	v, ok := fields[key]
	if !ok || !v.IsArray() {
		return nil, false
	}
	items := v.Array()
	out := make([]domain.Command, 0, len(items))
	for _, it := range items {
		if !it.IsObject() {
			return nil, false
		}
		m := lastValues(it)
		var c domain.Command
		if s := stringField(m, "key"); s != nil {
			c.Key = *s
		}
		if s := stringField(m, "description"); s != nil {
			c.Description = *s
		}
		c.Enabled = m["enabled"].Type == gjson.True
		out = append(out, c)
	}
	return out, true
}

func validUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}
