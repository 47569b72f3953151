// Command statekey builds, encodes and inspects global state keys.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		logrus.WithError(err).Fatal("statekey failed")
	}
}
