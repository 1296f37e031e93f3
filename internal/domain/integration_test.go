package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindIntegration(t *testing.T) {
	catalog := []Integration{
		{ID: "slack", Name: "Slack"},
		{ID: "github", Name: "GitHub"},
	}

	found := FindIntegration(catalog, "github")
	if assert.NotNil(t, found) {
		assert.Equal(t, "GitHub", found.Name)
	}

	assert.Nil(t, FindIntegration(catalog, "GitHub"))
	assert.Nil(t, FindIntegration(catalog, " github"))
	assert.Nil(t, FindIntegration(nil, "slack"))

	// the returned descriptor is a copy
	found.Name = "changed"
	assert.Equal(t, "GitHub", catalog[1].Name)
}

func TestIntegration_TintColor(t *testing.T) {
	assert.Equal(t, "#4A154B20", Integration{Color: "#4A154B"}.TintColor())
	assert.Equal(t, "#ffaa0020", Integration{Color: "#fa0"}.TintColor())
	assert.Equal(t, "", Integration{Color: "red; background:url(x)"}.TintColor())
	assert.False(t, Integration{Color: "blue"}.HasValidColor())
}
