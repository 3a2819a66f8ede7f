package cmd

import (
	"os"

	"javaboot/logging"
)

// exit is swapped by tests
var exit = os.Exit

// ExitWithError reports err, as {"error": ...} in JSON mode, and exits with status 1.
func ExitWithError(err error) {
	if jsonOutput {
		_ = OutputJSON(ErrorOutput{Error: err.Error()})
	} else {
		logging.LogError("❌ %v", err)
	}
	_ = logging.Close()
	exit(1)
}
