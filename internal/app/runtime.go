package app

import (
	"os"
	"strconv"
)

const testModeEnv = "STACKCHART_TEST_MODE"

// InTestMode reports whether main should return before running any command.
// Any value strconv.ParseBool accepts as true enables it.
func InTestMode() bool {
	enabled, err := strconv.ParseBool(os.Getenv(testModeEnv))
	return err == nil && enabled
}
