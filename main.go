package main

import (
	"github.com/Matt-17/Dropblog/server"
)

func main() {
	server.RunServer()
}
