// main.go
package main

import (
	"log"

	"institute-events/cmd"
)

func main() {
	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}
}
