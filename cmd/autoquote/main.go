// Command autoquote prints loan quotes and plan comparisons from the shell.
//
// Usage:
//
//	autoquote quote --price 35000 --down 7000 --term 36 --apr 7.9
//	autoquote plans --price 35000 --down 7000 [--plans-file plans.yaml]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
