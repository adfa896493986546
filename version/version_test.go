package version

import "testing"

func TestString(t *testing.T) {
	defer func(v, c, d string) { Version, GitCommit, BuildDate = v, c, d }(Version, GitCommit, BuildDate)

	Version, GitCommit, BuildDate = "dev", "", ""
	if got := String(); got != "dev" {
		t.Errorf("expected plain dev version, got %q", got)
	}

	Version, GitCommit, BuildDate = "1.2.0", "abc1234", "2026-08-23"
	if got := String(); got != "1.2.0 (commit abc1234, built 2026-08-23)" {
		t.Errorf("unexpected version line %q", got)
	}
}
