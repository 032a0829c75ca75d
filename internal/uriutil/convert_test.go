package uriutil_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"bennypowers.dev/cssval/internal/uriutil"
	"github.com/stretchr/testify/assert"
)

func TestPathToURI(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix paths")
	}
	tests := []struct {
		path string
		want string
	}{
		{"/home/user/site", "file:///home/user/site"},
		{"/", "file:///"},
		{"/home/user/my site/a#b.css", "file:///home/user/my%20site/a%23b.css"},
		{"/srv/样式.css", "file:///srv/%E6%A0%B7%E5%BC%8F.css"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, uriutil.PathToURI(tt.path))
		})
	}

	abs, err := filepath.Abs("testdata")
	assert.NoError(t, err)
	assert.Equal(t, uriutil.PathToURI(abs), uriutil.PathToURI("testdata"), "relative paths are made absolute")
}

func TestURIToPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix paths")
	}
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/user/site", "/home/user/site"},
		{"file:///home/user/my%20site/a%23b.css", "/home/user/my site/a#b.css"},
		{"file:///C:/proj/a.css", "C:/proj/a.css"},
		{"file://server/share/a.css", "server/share/a.css"},
		{"/already/a/path", "/already/a/path"},
		{"untitled:Untitled-1", "untitled:Untitled-1"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, uriutil.URIToPath(tt.uri))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix paths")
	}
	for _, p := range []string{"/a/b c/d.css", "/x/%20literal.html", "/y/z!@$&'()+,;=.ts"} {
		assert.Equal(t, p, uriutil.URIToPath(uriutil.PathToURI(p)), p)
	}
}
