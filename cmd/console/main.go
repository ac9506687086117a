package main

import (
	"log"

	"github.com/evalboard/console/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
