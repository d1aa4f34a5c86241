package email

// Provider отправляет уведомления пользователям.
// Отправка всегда best-effort: ошибки логируются, но не откатывают бизнес-операцию.
type Provider interface {
	SendVerificationDecision(to, claim string, approved bool, note string) error
}

// NoopProvider используется когда SMTP не сконфигурирован (dev, тесты).
type NoopProvider struct{}

func (p *NoopProvider) SendVerificationDecision(to, claim string, approved bool, note string) error {
	return nil
}
