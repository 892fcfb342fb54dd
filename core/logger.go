package core

// Logger is any service that can log messages at the usual levels.
// Args may carry extra context: an error, a map of fields or the acting
// student; implementations decide what to do with each.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
