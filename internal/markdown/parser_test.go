package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := []byte(`---
title: Dubai
order: 1
---
# Skyline

Desert safari and **Burj Khalifa**.
`)
	var meta struct {
		Title string `yaml:"title"`
		Order int    `yaml:"order"`
	}

	html, err := NewParser().Parse(src, &meta)
	require.NoError(t, err)
	assert.Equal(t, "Dubai", meta.Title)
	assert.Equal(t, 1, meta.Order)
	assert.Contains(t, string(html), `<h1 id="skyline">Skyline</h1>`)
	assert.Contains(t, string(html), "<strong>Burj Khalifa</strong>")
	assert.NotContains(t, string(html), "title:")
}

func TestParseWithoutFrontmatter(t *testing.T) {
	var meta map[string]any
	html, err := NewParser().Parse([]byte("plain"), &meta)
	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.Contains(t, string(html), "<p>plain</p>")
}

func TestParseExternalLinks(t *testing.T) {
	var meta map[string]any
	html, err := NewParser().Parse([]byte("[واتساب](https://wa.me/201000000000) or [services](/services)"), &meta)
	require.NoError(t, err)
	assert.Contains(t, string(html), `<a href="https://wa.me/201000000000" target="_blank" rel="noopener noreferrer">واتساب</a>`)
	assert.Contains(t, string(html), `<a href="/services">services</a>`)
}
