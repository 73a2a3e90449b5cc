package main

import (
	"log"
	"os"
)

var server srv

func main() {
	if err := server.newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
