package apierror

import (
	"errors"
	"fmt"
	"testing"
)

func TestService(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "json message", body: `{"message":"x"}`, wantMsg: "x"},
		{name: "json without message", body: `{"error":"boom"}`, wantMsg: `{"error":"boom"}`},
		{name: "plain text", body: "  upstream exploded\n", wantMsg: "upstream exploded"},
		{name: "empty body", body: "", wantMsg: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Service("cardsearch", 500, []byte(tt.body))
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if !IsService(err) || IsMalformed(err) {
				t.Errorf("expected service kind, got %q", err.Kind)
			}
			if StatusCode(err) != 500 {
				t.Errorf("StatusCode = %d, want 500", StatusCode(err))
			}
		})
	}
}

func TestServiceTruncatesBody(t *testing.T) {
	body := make([]byte, 2000)
	for i := range body {
		body[i] = 'a'
	}
	err := Service("ygoprodeck", 502, body)
	if len(err.Message) != maxBodyMessage {
		t.Fatalf("expected message capped at %d, got %d", maxBodyMessage, len(err.Message))
	}
}

func TestMalformedUnwraps(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := fmt.Errorf("lookup: %w", Malformed("cardsearch", "decode card", cause))

	if !IsMalformed(err) {
		t.Fatal("expected wrapped error to be malformed")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
	if got := err.Error(); got != "lookup: cardsearch: decode card: unexpected EOF" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestHelpersOnForeignErrors(t *testing.T) {
	err := errors.New("dial tcp: connection refused")
	if IsService(err) || IsMalformed(err) {
		t.Fatal("plain errors must not classify")
	}
	if StatusCode(err) != 0 || Message(err) != "" {
		t.Fatal("plain errors carry no status or message")
	}
}
