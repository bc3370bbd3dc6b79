package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSitemap(t *testing.T) {
	content, err := NewContentService(testContent())
	require.NoError(t, err)

	out, err := NewSitemapService(content, "https://rihla.example/").GenerateSitemap()
	require.NoError(t, err)

	xml := string(out)
	assert.Contains(t, xml, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, xml, "<loc>https://rihla.example/</loc>")
	assert.Contains(t, xml, "<loc>https://rihla.example/services/europe-visa</loc>")
	assert.Contains(t, xml, "<loc>https://rihla.example/services/events-and-travel</loc>")
	assert.Contains(t, xml, "<loc>https://rihla.example/locations/dubai</loc>")
	assert.Contains(t, xml, "<loc>https://rihla.example/legal/terms</loc>")
	assert.NotContains(t, xml, "/dash")
	assert.NotContains(t, xml, "/profile")
}
