package main

import "github.com/chatledger/backend/internal/cli"

func main() {
	cli.Execute()
}
