// Kefir reads and writes per-application configuration files.
//
// Usage:
//
//	kefir -n my-app set window:width 1024   # write a nested value
//	kefir -n my-app get window:width        # print a value
//	kefir -n my-app list                    # print every top-level key
//	kefir -n my-app delete window           # remove a top-level key
//	kefir -n my-app path                    # print the file location
//	kefir -n my-app reset                   # empty the file
package main

import (
	"os"

	"github.com/0xalexb/kefir/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
