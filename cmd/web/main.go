package main

import (
	"ideahub_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// .env необязателен: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	app.Run()
}
