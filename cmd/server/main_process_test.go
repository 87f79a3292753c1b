package main

import (
	"os"
	"os/exec"
	"testing"
)

// Re-executes the test binary as the real process so main's log.Fatal path
// is covered: with Redis pointed at a closed port the process must die.
func TestMainExitsWhenRedisUnreachable(t *testing.T) {
	if os.Getenv("EKOINK_HELPER_PROCESS") == "1" {
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestMainExitsWhenRedisUnreachable")
	cmd.Env = append(os.Environ(),
		"EKOINK_HELPER_PROCESS=1",
		"SERVER_ENV=development",
		"SERVER_PORT=18099",
		"REDIS_URL=redis://127.0.0.1:0",
	)

	if err := cmd.Run(); err == nil {
		t.Fatal("expected the helper process to exit non-zero")
	}
}
