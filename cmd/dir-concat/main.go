package main

import "github.com/bethropolis/dir-concat/internal/cli"

func main() {
	cli.Execute()
}
