package main

import (
	"fmt"
	"os"
)

func main() {
	root, a := buildRootCmd()
	err := root.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
