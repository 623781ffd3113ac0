package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Everforest Dark palette, trimmed to what the generator prints.
const (
	colorTime      = "\x1b[38;5;107m" // Mid forest green
	colorComponent = "\x1b[38;5;208m" // Autumn orange
	colorKey       = "\x1b[38;5;65m"  // Deep forest green
	colorWarnFg    = "\x1b[38;5;179m"
	colorWarnBg    = "\x1b[48;5;58m"
	colorErrorFg   = "\x1b[38;5;167m"
	colorErrorBg   = "\x1b[48;5;52m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  WARN  typeconv  Unresolved type  spelling=Widget"
type minimalEncoder struct {
	*zapcore.MapObjectEncoder // context fields added via With()
	color                     bool
}

func newMinimalEncoder(color bool) *minimalEncoder {
	return &minimalEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		color:            color,
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := newMinimalEncoder(enc.color)
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	enc.paint(final, colorTime, ent.Time.Format("15:04:05"))

	// Level: only show for WARN/ERROR and above
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(enc.levelString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		enc.paint(final, colorComponent, ent.LoggerName)
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	for _, kv := range enc.pairs(fields) {
		final.AppendString("  ")
		enc.paint(final, colorKey, kv[0]+"=")
		final.AppendString(kv[1])
	}

	final.AppendString("\n")
	return final, nil
}

// pairs renders context fields (sorted) followed by entry fields (in call order).
func (enc *minimalEncoder) pairs(fields []zapcore.Field) [][2]string {
	var out [][2]string

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if skipKey(k) {
			continue
		}
		out = append(out, [2]string{k, formatValue(enc.Fields[k])})
	}

	for _, f := range fields {
		m := zapcore.NewMapObjectEncoder()
		f.AddTo(m)
		entryKeys := make([]string, 0, len(m.Fields))
		for k := range m.Fields {
			entryKeys = append(entryKeys, k)
		}
		sort.Strings(entryKeys)
		for _, k := range entryKeys {
			if skipKey(k) {
				continue
			}
			out = append(out, [2]string{k, formatValue(m.Fields[k])})
		}
	}
	return out
}

// skipKey drops verbose stack dumps that cockroachdb errors attach via fmt.Formatter.
func skipKey(k string) bool {
	return k == "errorVerbose"
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []interface{}:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return fmt.Sprint(val)
	}
}

func (enc *minimalEncoder) paint(buf *buffer.Buffer, color, s string) {
	if enc.color {
		buf.AppendString(color)
		buf.AppendString(s)
		buf.AppendString(colorReset)
		return
	}
	buf.AppendString(s)
}

// levelString returns bold + colored + background for WARN/ERROR when colors are on
func (enc *minimalEncoder) levelString(level zapcore.Level) string {
	name := level.CapitalString()
	if !enc.color {
		return name
	}
	switch level {
	case zapcore.DebugLevel:
		return colorKey + name + colorReset
	case zapcore.WarnLevel:
		return colorBold + colorWarnBg + colorWarnFg + name + colorReset
	default:
		return colorBold + colorErrorBg + colorErrorFg + name + colorReset
	}
}
