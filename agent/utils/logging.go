package utils

import (
	"flag"
	"os"
	"strings"
)

// ParseLoggingArgs forwards a single settings string like
// "-logtostderr=true -v=2" to glog's flags.
func ParseLoggingArgs(s string) {
	args := make([]string, 1, 12)
	args[0] = os.Args[0]
	args = append(args, strings.Fields(s)...)
	orgArgs := os.Args
	os.Args = args
	flag.Parse()
	os.Args = orgArgs
}
