package ladderintegrationtests

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")

	code := m.Run()
	if testEnv != nil {
		testEnv.Cleanup()
	}
	os.Exit(code)
}
