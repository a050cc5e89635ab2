package services

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func TestParseRequest_InvalidInput(t *testing.T) {
	bad := []string{
		``,
		`{`,
		`{"botName":}`,
		`not json`,
		`null`,
		" null ",
		"\xef\xbb\xbf",
		"\xef\xbb\xbfnull",
	}
	for _, in := range bad {
		if _, err := ParseRequest([]byte(in)); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ParseRequest(%q) err = %v; want ErrInvalidInput", in, err)
		}
	}
}

func TestParseRequest_NonObjectIsEmptyUpdate(t *testing.T) {
	for _, in := range []string{`[1,2,3]`, `[{"reset":true}]`, `"reset"`, `42`, `true`, `false`} {
		req, err := ParseRequest([]byte(in))
		if err != nil {
			t.Fatalf("ParseRequest(%q): %v", in, err)
		}
		if req.Reset || !req.Patch.Empty() {
			t.Fatalf("ParseRequest(%q) = %+v; want empty update", in, req)
		}
	}
}

func TestParseRequest_DuplicateKeysLastWins(t *testing.T) {
	req, err := ParseRequest([]byte(`{"reset":false,"reset":true}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if !req.Reset {
		t.Fatalf("last reset should win")
	}

	req, err = ParseRequest([]byte(`{"reset":true,"reset":false}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Reset {
		t.Fatalf("last reset should win")
	}

	for _, in := range []string{`{"prefix":1,"prefix":"b"}`, `{"prefix":"a","prefix":"b"}`} {
		req, err := ParseRequest([]byte(in))
		if err != nil {
			t.Fatalf("ParseRequest(%q): %v", in, err)
		}
		if req.Patch.Prefix == nil || *req.Patch.Prefix != "b" {
			t.Fatalf("ParseRequest(%q).Prefix = %v; want b", in, req.Patch.Prefix)
		}
	}

	// A later mistyped value hides an earlier good one.
	req, err = ParseRequest([]byte(`{"botName":"a","botName":7}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Patch.BotName != nil {
		t.Fatalf("botName = %q; want absent", *req.Patch.BotName)
	}

	req, err = ParseRequest([]byte(`{"commands":[{"key":"a","key":"b","enabled":true,"enabled":false}]}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if c := req.Patch.Commands; len(c) != 1 || c[0].Key != "b" || c[0].Enabled {
		t.Fatalf("commands = %+v", c)
	}
}

func TestParseRequest_LeadingBOM(t *testing.T) {
	req, err := ParseRequest([]byte("\xef\xbb\xbf{\"prefix\":\"?\"}"))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Patch.Prefix == nil || *req.Patch.Prefix != "?" {
		t.Fatalf("prefix = %v", req.Patch.Prefix)
	}
}

func TestParseRequest_InvalidUTF8IsReplaced(t *testing.T) {
	req, err := ParseRequest([]byte("{\"botName\":\"a\xffb\",\"commands\":[{\"key\":\"\xfe\",\"description\":\"d\xc3\"}]}"))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if got := *req.Patch.BotName; got != "a\uFFFDb" || !utf8.ValidString(got) {
		t.Fatalf("botName = %q", got)
	}
	c := req.Patch.Commands
	if len(c) != 1 || c[0].Key != "\uFFFD" || c[0].Description != "d\uFFFD" {
		t.Fatalf("commands = %+v", c)
	}
}

func TestParseRequest_Reset(t *testing.T) {
	cases := map[string]bool{
		`{"reset":true}`:              true,
		`{"reset":true,"prefix":"?"}`: true,
		`{"reset":false}`:             false,
		`{"reset":"true"}`:            false,
		`{"reset":1}`:                 false,
		`{}`:                          false,
		`{"nested":{"reset":true}}`:   false,
	}
	for in, want := range cases {
		req, err := ParseRequest([]byte(in))
		if err != nil {
			t.Fatalf("ParseRequest(%q): %v", in, err)
		}
		if req.Reset != want {
			t.Fatalf("ParseRequest(%q).Reset = %v; want %v", in, req.Reset, want)
		}
	}
}

func TestParseRequest_StringFields(t *testing.T) {
	req, err := ParseRequest([]byte(`{
		"status":"offline",
		"botName":"X",
		"prefix":"",
		"welcomeMessage":"hi ✨",
		"autoReply":"ok",
		"foo":"bar"
	}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	p := req.Patch
	if p.Status == nil || *p.Status != "offline" {
		t.Fatalf("status = %v", p.Status)
	}
	if p.BotName == nil || *p.BotName != "X" {
		t.Fatalf("botName = %v", p.BotName)
	}
	if p.Prefix == nil || *p.Prefix != "" {
		t.Fatalf("empty prefix must still be present: %v", p.Prefix)
	}
	if p.WelcomeMessage == nil || *p.WelcomeMessage != "hi ✨" {
		t.Fatalf("welcomeMessage = %v", p.WelcomeMessage)
	}
	if p.AutoReply == nil || *p.AutoReply != "ok" {
		t.Fatalf("autoReply = %v", p.AutoReply)
	}
	if p.HasCommands {
		t.Fatalf("commands should be absent")
	}
}

func TestParseRequest_WrongTypesAreDropped(t *testing.T) {
	req, err := ParseRequest([]byte(`{
		"status":1,
		"botName":null,
		"prefix":["!"],
		"welcomeMessage":{"text":"x"},
		"autoReply":true,
		"commands":"ping"
	}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if !req.Patch.Empty() {
		t.Fatalf("expected empty patch, got %+v", req.Patch)
	}
}

func TestParseRequest_Commands(t *testing.T) {
	req, err := ParseRequest([]byte(`{"commands":[
		{"key":"ping","description":"Cek respon bot","enabled":true},
		{"key":"help","enabled":false,"extra":1},
		{"key":7,"description":null,"enabled":"yes"}
	]}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	p := req.Patch
	if !p.HasCommands || len(p.Commands) != 3 {
		t.Fatalf("commands = %+v (has=%v)", p.Commands, p.HasCommands)
	}
	if p.Commands[0].Key != "ping" || p.Commands[0].Description != "Cek respon bot" || !p.Commands[0].Enabled {
		t.Fatalf("cmd[0] = %+v", p.Commands[0])
	}
	if p.Commands[1].Key != "help" || p.Commands[1].Enabled {
		t.Fatalf("cmd[1] = %+v", p.Commands[1])
	}
	if p.Commands[2].Key != "" || p.Commands[2].Description != "" || p.Commands[2].Enabled {
		t.Fatalf("mistyped members should be zero: %+v", p.Commands[2])
	}
}

func TestParseRequest_CommandsEmptyAndNonObjectElements(t *testing.T) {
	req, err := ParseRequest([]byte(`{"commands":[]}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if !req.Patch.HasCommands || req.Patch.Commands == nil || len(req.Patch.Commands) != 0 {
		t.Fatalf("empty array must clear commands: %+v", req.Patch)
	}

	req, err = ParseRequest([]byte(`{"commands":[{"key":"a"},"b"]}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Patch.HasCommands {
		t.Fatalf("array with non-object element must be ignored: %+v", req.Patch)
	}
}
