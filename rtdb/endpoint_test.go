package rtdb

import (
	"errors"
	"testing"

	apperrors "github.com/kbukum/firekit/errors"
)

func TestValidateEndpointLax(t *testing.T) {
	tests := []struct {
		endpoint string
		valid    bool
	}{
		{"https://abc.firebaseio.com/", true},
		{"https://dinosaur-facts.firebaseio.com/", true},
		{"https://abc.firebaseio.com/extra/path", true},
		{"https://abcXfirebaseioYcom/", true},
		{"prefix https://abc.firebaseio.com/ suffix", true},
		{"https://ünïcode.firebaseio.com/", true},
		{"https://it's_\"odd\".firebaseio.com/", true},
		{"https://Ⅻ.firebaseio.com/", true},
		{"https://a\u200db.firebaseio.com/", true},
		{"https://\u200c.firebaseio.com/", true},
		{"https://Ⓐ.firebaseio.com/", true},
		{"https://x.firebaseio.com/\u200d", true},
		{"https://x.fireb\u200dseio.com/", false},
		{"https://☃.firebaseio.com/", false},
		{"https://\u200b.firebaseio.com/", false},
		{"http://x.firebaseio.com/", false},
		{"https://abc.firebaseio.com", false},
		{"https://.firebaseio.com/", false},
		{"https://ab c.firebaseio.com/", false},
		{"https://abc.example.com/", false},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(tc.endpoint, func(t *testing.T) {
			err := validateEndpoint(tc.endpoint, false)
			if tc.valid && err != nil {
				t.Errorf("expected %q to be accepted, got %v", tc.endpoint, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("expected %q to be rejected", tc.endpoint)
			}
		})
	}
}

func TestValidateEndpointStrict(t *testing.T) {
	tests := []struct {
		endpoint string
		valid    bool
	}{
		{"https://abc.firebaseio.com/", true},
		{"https://dinosaur-facts.firebaseio.com/", true},
		{"https://a.firebaseio.com/", true},
		{"https://abcXfirebaseio.com/", false},
		{"https://abc.firebaseio.com/extra", false},
		{"https://-abc.firebaseio.com/", false},
		{"https://abc-.firebaseio.com/", false},
		{"https://it's.firebaseio.com/", false},
		{" https://abc.firebaseio.com/", false},
	}
	for _, tc := range tests {
		t.Run(tc.endpoint, func(t *testing.T) {
			err := validateEndpoint(tc.endpoint, true)
			if tc.valid != (err == nil) {
				t.Errorf("strict(%q): valid=%v, err=%v", tc.endpoint, tc.valid, err)
			}
		})
	}
}

func TestNewInvalidEndpoint(t *testing.T) {
	c, err := New("http://x.firebaseio.com/", WithTransport(&stubDoer{}))
	if c != nil {
		t.Error("expected no client")
	}
	if !errors.Is(err, ErrInvalidEndpoint) {
		t.Fatalf("expected ErrInvalidEndpoint, got %v", err)
	}
	appErr, _ := apperrors.AsAppError(err)
	if appErr.Details["endpoint"] != "http://x.firebaseio.com/" {
		t.Errorf("expected endpoint in details, got %v", appErr.Details)
	}
	if errors.Is(err, ErrTransport) {
		t.Error("invalid endpoint must not match ErrTransport")
	}
}

func TestNewStrictEndpoint(t *testing.T) {
	if _, err := New("https://abcXfirebaseio.com/", WithTransport(&stubDoer{})); err != nil {
		t.Errorf("lax mode should accept, got %v", err)
	}
	_, err := New("https://abcXfirebaseio.com/", WithTransport(&stubDoer{}), WithStrictEndpoint())
	if !errors.Is(err, ErrInvalidEndpoint) {
		t.Errorf("strict mode should reject, got %v", err)
	}
}
