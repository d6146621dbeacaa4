package places

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, uint(10000), cfg.Radius)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.Language)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithAPIKey("abc"),
			WithRadius(2500),
			WithRateLimit(5),
			WithRequestTimeout(3*time.Second),
			WithLanguage("en"),
		)

		assert.Equal(t, "abc", cfg.APIKey)
		assert.Equal(t, uint(2500), cfg.Radius)
		assert.Equal(t, 5, cfg.RateLimit)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "en", cfg.Language)
	})
}

func TestConfigNormalize(t *testing.T) {
	cfg := &Config{APIKey: "  key \n", Language: " pt_BR "}
	cfg.Normalize()

	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "pt-BR", cfg.Language)
	assert.Equal(t, DefaultRadius, cfg.Radius)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ConfigOption
		wantErr error
		errText string
	}{
		{name: "valid", opts: []ConfigOption{WithAPIKey("k")}},
		{name: "missing key", opts: nil, wantErr: ErrAPIKeyRequired},
		{name: "blank key", opts: []ConfigOption{WithAPIKey("   ")}, wantErr: ErrAPIKeyRequired},
		{name: "radius too large", opts: []ConfigOption{WithAPIKey("k"), WithRadius(50001)}, errText: "Radius"},
		{name: "radius at max", opts: []ConfigOption{WithAPIKey("k"), WithRadius(50000)}},
		{name: "zero radius folds to default", opts: []ConfigOption{WithAPIKey("k"), WithRadius(0)}},
		{name: "negative rate limit", opts: []ConfigOption{WithAPIKey("k"), WithRateLimit(-1)}, errText: "RateLimit"},
		{name: "zero rate limit", opts: []ConfigOption{WithAPIKey("k"), WithRateLimit(0)}},
		{name: "zero timeout", opts: []ConfigOption{WithAPIKey("k"), WithRequestTimeout(0)}, errText: "RequestTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfig(tt.opts...).Validate()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
