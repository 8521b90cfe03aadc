package main

import (
	"log"

	"github.com/helpdesk-portal/helpdesk-service/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
