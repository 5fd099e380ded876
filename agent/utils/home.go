package utils

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/golang/glog"
)

const tailsSubPath = ".indy_client/tails"

// HomeDir returns $HOME or the home of the current user.
func HomeDir() string {
	if v := os.Getenv("HOME"); v != "" {
		return v
	}
	currentUser, err := user.Current()
	if err != nil {
		glog.Warningf("no home directory: %v", err)
		return os.TempDir()
	}
	return currentUser.HomeDir
}

func DefaultTailsDir() string {
	return filepath.Join(HomeDir(), tailsSubPath)
}
