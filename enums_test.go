package webui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserNames(t *testing.T) {
	for b := NoBrowser; b <= Webview; b++ {
		got, err := ParseBrowser(b.String())
		require.NoError(t, err, b.String())
		assert.Equal(t, b, got)
	}

	b, err := ParseBrowser("")
	require.NoError(t, err)
	assert.Equal(t, AnyBrowser, b)

	b, err = ParseBrowser(" Chrome ")
	require.NoError(t, err)
	assert.Equal(t, Chrome, b)

	_, err = ParseBrowser("netscape")
	assert.Error(t, err)
	assert.Equal(t, "Browser(99)", Browser(99).String())
}

func TestBrowserEncoding(t *testing.T) {
	tests := []struct {
		browser Browser
		want    uint
	}{
		{NoBrowser, 0},
		{AnyBrowser, 1},
		{Chrome, 2},
		{Firefox, 3},
		{Edge, 4},
		{Safari, 5},
		{Chromium, 6},
		{Opera, 7},
		{Brave, 8},
		{Vivaldi, 9},
		{Epic, 10},
		{Yandex, 11},
		{ChromiumBased, 12},
		{Webview, 13},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, uint(tt.browser), tt.browser.String())
	}
}

func TestRuntimeNames(t *testing.T) {
	tests := []struct {
		in   string
		want Runtime
	}{
		{"", RuntimeNone},
		{"none", RuntimeNone},
		{"deno", RuntimeDeno},
		{"NodeJS", RuntimeNodeJS},
		{"node", RuntimeNodeJS},
	}
	for _, tt := range tests {
		got, err := ParseRuntime(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	assert.Equal(t, uint(2), uint(RuntimeNodeJS))
	_, err := ParseRuntime("bun")
	assert.Error(t, err)
}

func TestOptionNames(t *testing.T) {
	for o := ShowWaitConnection; o <= AsynchronousResponse; o++ {
		got, err := ParseOption(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	_, err := ParseOption("turbo")
	assert.Error(t, err)
	assert.Equal(t, "Option(-1)", Option(-1).String())
}
