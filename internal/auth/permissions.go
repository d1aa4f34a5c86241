package auth

// Правила доступа платформы. Две роли: обычный пользователь и админ.
// Все мутации, кроме апвоута, требуют залогиненного пользователя;
// модерация и верификация - только админ.

// IsAdmin проверяет является ли пользователь администратором
func IsAdmin(claims *Claims) bool {
	return claims != nil && claims.IsAdmin
}

// IsAuthenticated проверяет есть ли залогиненный пользователь
func IsAuthenticated(claims *Claims) bool {
	return claims != nil && claims.UserID != ""
}
