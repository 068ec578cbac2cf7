package main

import (
	"log"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
