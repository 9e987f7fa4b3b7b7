// Package logging provides the structured logging interface used across taxcalc.
// Components receive a Logger through their constructors; LogrusAdapter is the
// production implementation and MockLogger records entries for tests.
package logging

// Logger is a structured, levelled logger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Fatal logs and exits the process.
	Fatal(msg string, fields ...Field)
	Fatalf(msg string, args ...interface{})

	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for constructing a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
