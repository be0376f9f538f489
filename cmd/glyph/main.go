package main

import "github.com/TheBlueMuzzy/Glyphtender-sub000/internal/cli"

func main() {
	cli.Execute()
}
