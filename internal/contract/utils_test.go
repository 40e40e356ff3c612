package contract

import (
	"strings"
	"testing"

	"github.com/huangsam/protopair/schema"
	"github.com/stretchr/testify/assert"
)

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		excludes []string
		want     bool
	}{
		{"no excludes", "main.go", nil, false},
		{"prefix match", "vendor/lib/a.go", []string{"vendor/"}, true},
		{"prefix no match", "src/vendor.go", []string{"vendor/"}, false},
		{"extension match", "bundle.min.js", []string{".min.js"}, true},
		{"glob on base name", "static/app.min.js", []string{"*.min.js"}, true},
		{"glob full path", "gen/user.pb.go", []string{"gen/*"}, true},
		{"double star collapses", "gen/user.pb.go", []string{"gen/**"}, true},
		{"substring match", "third_party/protos/a.proto", []string{"third_party"}, true},
		{"blank pattern skipped", "main.go", []string{"", "  "}, false},
		{"no match at all", "core/mine.go", []string{"vendor/", "*.md"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldIgnore(tt.path, tt.excludes))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	// Colored output still contains the plain label text.
	tests := []struct {
		lift float64
		want string
	}{
		{3.0, schema.StrongValue},
		{1.5, schema.PositiveValue},
		{1.0, schema.IndependentValue},
		{0.5, schema.NegativeValue},
	}

	for _, tt := range tests {
		assert.Contains(t, GetColorLabel(tt.lift), tt.want)
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		want     string
	}{
		{"short path unchanged", "main.go", 20, "main.go"},
		{"exact width unchanged", "main.go", 7, "main.go"},
		{"long path keeps tail", "internal/outwriter/output_pairs.go", 20, "...r/output_pairs.go"},
		{"tiny width unchanged", "internal/outwriter/output_pairs.go", 3, "internal/outwriter/output_pairs.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatePath(tt.path, tt.maxWidth)
			assert.Equal(t, tt.want, got)
			if tt.maxWidth > 3 {
				assert.LessOrEqual(t, len(got), max(tt.maxWidth, len(tt.path)))
			}
		})
	}
}

func TestParseBoolString(t *testing.T) {
	truthy := []string{"yes", "YES", "true", "True", "1"}
	for _, s := range truthy {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, v)
	}

	falsy := []string{"no", "NO", "false", "False", "0"}
	for _, s := range falsy {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, v)
	}

	for _, s := range []string{"", "maybe", "2"} {
		_, err := ParseBoolString(s)
		assert.Error(t, err)
	}
}

func TestGetDBFilePaths(t *testing.T) {
	cachePath := GetCacheDBFilePath()
	resultsPath := GetResultsDBFilePath()

	assert.True(t, strings.HasSuffix(cachePath, ".protopair_cache.db"))
	assert.True(t, strings.HasSuffix(resultsPath, ".protopair_results.db"))
	assert.NotEqual(t, cachePath, resultsPath)
}
