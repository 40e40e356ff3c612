package txn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/protopair/schema"
)

// ErrInvalidCommit marks structurally malformed commit data. A repository
// run aborts on it rather than skipping entries, since silent skips would
// corrupt the frequency counts downstream.
var ErrInvalidCommit = errors.New("invalid commit data")

// commitHeaderPrefix matches the --pretty=format:--%H header lines emitted
// by GitClient.GetChangeLog.
const commitHeaderPrefix = "--"

// ParseChangeLog parses `git log --name-only --pretty=format:--%H` output
// into commits. Each commit header opens a change set; the following
// non-blank lines are its paths. Commits touching zero paths are kept (they
// become empty transactions that no counter ever sees).
func ParseChangeLog(out []byte) ([]schema.Commit, error) {
	var commits []schema.Commit
	haveCommit := false

	for i, l := range strings.Split(string(out), "\n") {
		l = strings.TrimRight(l, "\r")
		if l == "" {
			continue
		}

		if strings.HasPrefix(l, commitHeaderPrefix) {
			hash := strings.TrimSpace(l[len(commitHeaderPrefix):])
			if hash == "" || strings.ContainsAny(hash, " \t") {
				return nil, fmt.Errorf("%w: commit header without hash at line %d", ErrInvalidCommit, i+1)
			}
			commits = append(commits, schema.Commit{ID: hash})
			haveCommit = true
			continue
		}

		if !haveCommit {
			return nil, fmt.Errorf("%w: path %q before any commit header", ErrInvalidCommit, l)
		}
		last := &commits[len(commits)-1]
		last.ChangedPaths = append(last.ChangedPaths, l)
	}

	return commits, nil
}
