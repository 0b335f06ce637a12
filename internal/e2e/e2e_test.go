package e2e

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/thereidfleish/myace-sub000/internal/client"
	"github.com/thereidfleish/myace-sub000/internal/mockapi"
)

var listedID = regexp.MustCompile(`\[(\d+)\]`)
var uploadCreated = regexp.MustCompile(`Upload (\d+) created`)

func TestEndToEnd(t *testing.T) {
	// 1. One fake backend, two users with separate config dirs.
	ts := httptest.NewServer(mockapi.New().Handler())
	defer ts.Close()

	aliceDir := t.TempDir()
	bobDir := t.TempDir()

	runCmd := func(configDir string, args ...string) string {
		configFile := filepath.Join(configDir, "config.json")

		oldStdout := os.Stdout
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatal(err)
		}
		os.Stdout = w

		cmd := client.GetRootCmd()
		cmd.SetArgs(append(args, "--config", configFile, "--server", ts.URL))
		execErr := cmd.Execute()

		_ = w.Close()
		os.Stdout = oldStdout

		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		if execErr != nil {
			t.Fatalf("command %v failed: %v", args, execErr)
		}
		return buf.String()
	}
	mustContain := func(out, want string) {
		t.Helper()
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	firstID := func(out string) string {
		t.Helper()
		m := listedID.FindStringSubmatch(out)
		if m == nil {
			t.Fatalf("no [id] in output:\n%s", out)
		}
		return m[1]
	}

	// 2. Both players sign up.
	out := runCmd(aliceDir, "register", "--username", "alice", "--display-name", "Alice", "--email", "alice@test.local", "--password", "topspin")
	mustContain(out, "Registered alice")
	out = runCmd(bobDir, "register", "--username", "bob", "--display-name", "Bob", "--email", "bob@test.local", "--password", "dropshot")
	mustContain(out, "Registered bob")

	// 3. Alice finds bob and asks to be friends.
	out = runCmd(aliceDir, "search", "bob")
	mustContain(out, "@bob")
	bobID := firstID(out)

	out = runCmd(aliceDir, "courtship", "request", bobID, "--as", "friend")
	mustContain(out, "sent to bob")

	out = runCmd(bobDir, "courtship", "list")
	mustContain(out, "friend from alice")
	reqID := firstID(out)

	out = runCmd(bobDir, "courtship", "accept", reqID)
	mustContain(out, "Request accepted.")

	// 4. Alice uploads two videos, one public and one private.
	video := filepath.Join(aliceDir, "rally.mp4")
	if err := os.WriteFile(video, []byte("fake video bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	out = runCmd(aliceDir, "upload", "create", video, "--title", "Match point", "--visibility", "public")
	m := uploadCreated.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no upload id in output:\n%s", out)
	}
	publicID := m[1]

	out = runCmd(aliceDir, "upload", "create", video, "--title", "Secret serve", "--visibility", "private")
	mustContain(out, "created")

	out = runCmd(aliceDir, "upload", "watch", publicID, "--interval", "10ms", "--timeout", "2s")
	mustContain(out, "Stream ready:")

	// 5. Bob's feed shows the public video and never the private one.
	out = runCmd(bobDir, "feed")
	mustContain(out, "Match point")
	if strings.Contains(out, "Secret serve") {
		t.Fatalf("private upload leaked into the feed:\n%s", out)
	}

	// 6. Bob leaves an anchored comment; alice reads it back.
	out = runCmd(bobDir, "comment", "add", publicID, "Great spin on that one", "--at", "30")
	mustContain(out, "posted")

	out = runCmd(aliceDir, "comment", "list", publicID)
	mustContain(out, "bob @30s")
	mustContain(out, "Great spin on that one")

	// 7. Alice deletes the video; it vanishes from bob's feed.
	out = runCmd(aliceDir, "upload", "delete", publicID)
	mustContain(out, "Upload deleted.")

	out = runCmd(bobDir, "feed")
	mustContain(out, "Your feed is empty.")

	// 8. The friendship can be ended from either side.
	out = runCmd(aliceDir, "courtship", "list")
	mustContain(out, "friend: bob")
	courtshipID := firstID(out)

	out = runCmd(aliceDir, "courtship", "remove", courtshipID)
	mustContain(out, "Courtship removed.")

	out = runCmd(bobDir, "courtship", "list")
	if strings.Contains(out, "alice") {
		t.Fatalf("courtship still visible after removal:\n%s", out)
	}
}

func TestEndToEndSessionExpiry(t *testing.T) {
	ts := httptest.NewServer(mockapi.New().Handler())
	defer ts.Close()
	dir := t.TempDir()

	runCmd := func(args ...string) string {
		configFile := filepath.Join(dir, "config.json")

		oldStdout := os.Stdout
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatal(err)
		}
		os.Stdout = w

		cmd := client.GetRootCmd()
		cmd.SetArgs(append(args, "--config", configFile, "--server", ts.URL))
		execErr := cmd.Execute()

		_ = w.Close()
		os.Stdout = oldStdout

		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		if execErr != nil {
			t.Fatalf("command %v failed: %v", args, execErr)
		}
		return buf.String()
	}

	out := runCmd("register", "--username", "carol", "--email", "carol@test.local", "--password", "pw")
	if !strings.Contains(out, "Registered carol") {
		t.Fatalf("register failed:\n%s", out)
	}

	// Corrupt the stored token; the next command must fail the restore,
	// clear the session and tell the user to log in again.
	tokenPath := filepath.Join(dir, "session_token")
	if err := os.WriteFile(tokenPath, []byte("stale-token"), 0600); err != nil {
		t.Fatal(err)
	}

	out = runCmd("whoami")
	if !strings.Contains(out, "ace login") {
		t.Fatalf("expected a login hint, got:\n%s", out)
	}
	if data, err := os.ReadFile(tokenPath); err == nil && len(data) > 0 {
		t.Fatalf("stale token should have been cleared, still holds %q", string(data))
	}
}
