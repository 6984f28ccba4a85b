// cmd/main.go
package main

import (
	"go-card-bank/app"
)

func main() {
	app.Run()
}
