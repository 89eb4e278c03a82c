//go:build integration
// +build integration

package integration

import (
	"context"
	"os/exec"
	"testing"
)

func restartMovieContainer(t *testing.T, ctx context.Context) {
	t.Helper()

	cmd := exec.CommandContext(ctx, "docker", "restart", getenv("E2E_CONTAINER", "movie"))
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("docker restart failed: %v\n%s", err, string(out))
	}
}
