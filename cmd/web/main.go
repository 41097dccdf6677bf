package main

import "ishtop_backend/internal/app"

func main() {
	app.Run()
}
