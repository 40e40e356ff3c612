package txn

import (
	"testing"
)

func FuzzParseChangeLog(f *testing.F) {
	f.Add("--abc123\napi/user.proto\ngen/user.pb.go\n")
	f.Add("--abc123\n\n--def456\nmain.go\n")
	f.Add("main.go\n")
	f.Add("--\n")
	f.Add("")

	f.Fuzz(func(t *testing.T, out string) {
		commits, err := ParseChangeLog([]byte(out))
		if err != nil {
			if commits != nil {
				t.Errorf("non-nil commits alongside error: %v", err)
			}
			return
		}
		for _, c := range commits {
			if c.ID == "" {
				t.Errorf("parsed commit with empty ID from %q", out)
			}
		}
	})
}
