package main

import (
	"log"

	"github.com/smartcv/jobfinder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
