package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - это ключ, по которому хранится *gorm.DB (пул или транзакция) в context
const DBContextKey = contextKey("db")
