package observability

import (
	"context"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type float64Field struct {
	key string
	val float64
}

func (f float64Field) Key() string        { return f.key }
func (f float64Field) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field          { return stringField{key, value} }
func Int(key string, value int) Field         { return intField{key, value} }
func Float64(key string, value float64) Field { return float64Field{key, value} }
func Error(key string, err error) Field       { return errorField{key, err} }

type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// NewLogrus adapts a logrus logger to the Logger interface consumed by the
// comparison pipeline.
func NewLogrus(l *logrus.Logger) Logger {
	return logrusLogger{entry: logrus.NewEntry(l)}
}

type logrusLogger struct {
	entry *logrus.Entry
}

func (l logrusLogger) fields(fields []Field) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key()] = f.Value()
	}
	return l.entry.WithFields(data)
}

func (l logrusLogger) Debug(msg string, fields ...Field) { l.fields(fields).Debug(msg) }
func (l logrusLogger) Info(msg string, fields ...Field)  { l.fields(fields).Info(msg) }
func (l logrusLogger) Warn(msg string, fields ...Field)  { l.fields(fields).Warn(msg) }
func (l logrusLogger) Error(msg string, fields ...Field) { l.fields(fields).Error(msg) }

func (l logrusLogger) With(fields ...Field) Logger {
	return logrusLogger{entry: l.fields(fields)}
}

// Tracer provides tracing hooks around pipeline stages.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}

// Span represents a tracing span.
type Span interface {
	SetTag(key string, value interface{})
	SetError(err error)
	Finish()
}

type nopTracer struct{}

func (nopTracer) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, nopSpan{}
}

// NopTracer returns a tracer that does nothing.
func NopTracer() Tracer { return nopTracer{} }

type nopSpan struct{}

func (nopSpan) SetTag(string, interface{}) {}
func (nopSpan) SetError(error)             {}
func (nopSpan) Finish()                    {}

// Standard metric names emitted by the comparison pipeline.
const (
	MetricExtractTime  = "compare.extract.duration"
	MetricDiffTime     = "compare.diff.duration"
	MetricAnnotateTime = "compare.annotate.duration"
	MetricComposeTime  = "compare.compose.duration"
	MetricWordCount    = "compare.words.count"
	MetricRegionCount  = "compare.regions.count"
	MetricPageCount    = "compare.pages.count"
)
