package lookup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://en.wikipedia.org/api/rest_v1/page/summary", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.NotEmpty(t, cfg.UserAgent)
	assert.True(t, cfg.Breaker.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with multiple options", func(t *testing.T) {
		breaker := BreakerConfig{Enabled: false}
		cfg := NewConfig(
			WithBaseURL("http://localhost:8080/summary"),
			WithTimeout(2*time.Second),
			WithUserAgent("test-agent"),
			WithBreaker(breaker),
		)

		assert.Equal(t, "http://localhost:8080/summary", cfg.BaseURL)
		assert.Equal(t, 2*time.Second, cfg.Timeout)
		assert.Equal(t, "test-agent", cfg.UserAgent)
		assert.Equal(t, breaker, cfg.Breaker)
	})
}

func TestConfig_Normalize(t *testing.T) {
	cfg := NewConfig(WithBaseURL("  https://example.org/summary///  "), WithUserAgent(" ua "))
	cfg.Normalize()

	assert.Equal(t, "https://example.org/summary", cfg.BaseURL)
	assert.Equal(t, "ua", cfg.UserAgent)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ConfigOption
		wantErr bool
	}{
		{"defaults", nil, false},
		{"http base url", []ConfigOption{WithBaseURL("http://127.0.0.1:9999")}, false},
		{"empty base url", []ConfigOption{WithBaseURL("")}, true},
		{"only slashes", []ConfigOption{WithBaseURL("///")}, true},
		{"bad scheme", []ConfigOption{WithBaseURL("ftp://example.org")}, true},
		{"no host", []ConfigOption{WithBaseURL("https://")}, true},
		{"zero timeout", []ConfigOption{WithTimeout(0)}, true},
		{"empty user agent", []ConfigOption{WithUserAgent("  ")}, true},
		{"breaker ratio too high", []ConfigOption{WithBreaker(BreakerConfig{Enabled: true, FailureRatio: 1.5, MinRequests: 1, Timeout: time.Second})}, true},
		{"breaker without min requests", []ConfigOption{WithBreaker(BreakerConfig{Enabled: true, FailureRatio: 0.5, Timeout: time.Second})}, true},
		{"breaker without timeout", []ConfigOption{WithBreaker(BreakerConfig{Enabled: true, FailureRatio: 0.5, MinRequests: 1})}, true},
		{"disabled breaker skips checks", []ConfigOption{WithBreaker(BreakerConfig{})}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfig(tt.opts...).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPage_Summary(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantErr  error
		wantLink string
	}{
		{
			name:     "standard with desktop link",
			payload:  `{"type":"standard","title":"Arduino","extract":"Arduino is...","content_urls":{"desktop":{"page":"https://d/Arduino"},"mobile":{"page":"https://m/Arduino"}}}`,
			wantLink: "https://d/Arduino",
		},
		{
			name:     "standard with mobile link only",
			payload:  `{"type":"standard","title":"Arduino","content_urls":{"mobile":{"page":"https://m/Arduino"}}}`,
			wantLink: "https://m/Arduino",
		},
		{
			name:     "standard without links",
			payload:  `{"type":"standard","title":"Arduino"}`,
			wantLink: "",
		},
		{
			name:    "disambiguation",
			payload: `{"type":"disambiguation","title":"Smart"}`,
			wantErr: ErrNotStandard,
		},
		{
			name:    "type is case sensitive",
			payload: `{"type":"Standard","title":"Smart"}`,
			wantErr: ErrNotStandard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := DecodePage([]byte(tt.payload))
			require.NoError(t, err)

			summary, err := page.Summary()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, summary)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Arduino", summary.Title)
			assert.Equal(t, tt.wantLink, summary.PageURL)
		})
	}
}

func TestDecodePage_Malformed(t *testing.T) {
	for _, payload := range []string{"", "not json", `{"type":`, `"standard"`} {
		_, err := DecodePage([]byte(payload))
		assert.ErrorIs(t, err, ErrMalformedPayload, "payload %q", payload)
	}
}
