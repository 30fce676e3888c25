package main

import (
	"os"

	"github.com/hopworks/logostamp/config"
)

func main() {
	if srv := config.Do(os.Args[1:]); srv != nil {
		srv.Run()
	}
}
