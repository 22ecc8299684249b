package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT_DefaultLocale(t *testing.T) {
	Init("pt-BR")
	msg := T(context.Background(), "geofence.outside_radius", map[string]any{"Distance": 150, "Radius": 100})
	assert.Equal(t, "Você está a 150m do local de trabalho. Distância máxima permitida: 100m.", msg)
}

func TestT_ContextLocale(t *testing.T) {
	Init("pt-BR")
	ctx := WithLocale(context.Background(), "en")
	assert.Equal(t, "Location permission denied. Enable location access to punch.", T(ctx, "geofence.permission_denied"))
}

func TestT_UnknownMessageFallsBackToID(t *testing.T) {
	Init("pt-BR")
	assert.Equal(t, "no.such.message", T(context.Background(), "no.such.message"))
}

func TestMatchAcceptLanguage(t *testing.T) {
	Init("pt-BR")
	assert.Equal(t, "en", MatchAcceptLanguage("en-US,en;q=0.9"))
	assert.Equal(t, "pt-BR", MatchAcceptLanguage("pt-BR,pt;q=0.9"))
	assert.Equal(t, "", MatchAcceptLanguage(""))
}
