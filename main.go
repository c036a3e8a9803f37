package main

import "github.com/idealo/mongodb-driver-perf/cmd"

func main() {
	cmd.Execute()
}
