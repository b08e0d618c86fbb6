package main

import (
	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
