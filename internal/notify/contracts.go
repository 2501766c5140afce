package notify

// Metrics интерфейс метрик доставки уведомлений
type Metrics interface {
	IncNotification(group, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
