package main

import (
	"log"

	"propfactor/cmd"
)

func main() {
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	err = apiHandler.StartApi(8085)
	if err != nil {
		log.Fatal(err)
	}
}
