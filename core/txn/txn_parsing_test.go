package txn

import (
	"testing"

	"github.com/huangsam/protopair/schema"
	"github.com/stretchr/testify/assert"
)

func TestParseChangeLog(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []schema.Commit
	}{
		{
			name: "empty input",
			out:  "",
			want: nil,
		},
		{
			name: "single commit with paths",
			out:  "--abc123\napi/user.proto\ngen/user.pb.go\n",
			want: []schema.Commit{
				{ID: "abc123", ChangedPaths: []string{"api/user.proto", "gen/user.pb.go"}},
			},
		},
		{
			name: "multiple commits with blank separators",
			out:  "--abc123\napi/user.proto\n\n--def456\nmain.go\nREADME.md\n",
			want: []schema.Commit{
				{ID: "abc123", ChangedPaths: []string{"api/user.proto"}},
				{ID: "def456", ChangedPaths: []string{"main.go", "README.md"}},
			},
		},
		{
			name: "commit with zero paths is kept",
			out:  "--abc123\n\n--def456\nmain.go\n",
			want: []schema.Commit{
				{ID: "abc123"},
				{ID: "def456", ChangedPaths: []string{"main.go"}},
			},
		},
		{
			name: "carriage returns stripped",
			out:  "--abc123\r\nmain.go\r\n",
			want: []schema.Commit{
				{ID: "abc123", ChangedPaths: []string{"main.go"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commits, err := ParseChangeLog([]byte(tt.out))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, commits)
		})
	}
}

func TestParseChangeLog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{"header without hash", "--\nmain.go\n"},
		{"header with whitespace hash", "--abc 123\nmain.go\n"},
		{"path before any header", "main.go\n--abc123\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commits, err := ParseChangeLog([]byte(tt.out))
			assert.Nil(t, commits)
			assert.ErrorIs(t, err, ErrInvalidCommit)
		})
	}
}

func TestParseChangeLog_PathStartingWithDashes(t *testing.T) {
	// A path like "--weird.go" is indistinguishable from a header, so the
	// parser treats it as one. Git paths starting with "--" do not occur in
	// practice with --name-only output.
	commits, err := ParseChangeLog([]byte("--abc123\nsrc/file.go\n"))
	assert.NoError(t, err)
	assert.Len(t, commits, 1)
	assert.Equal(t, []string{"src/file.go"}, commits[0].ChangedPaths)
}
