package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger define a interface para logging estruturado.
// Serviços, repositórios e o gerenciador de sessão dependem apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// LogEntry define a estrutura de um log para garantir o formato JSON.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
	"fatal": 4,
	"off":   5,
}

// SimpleLogger escreve uma linha JSON por entrada.
type SimpleLogger struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel int
	exit     func(int)
}

// NewLogger cria um Logger que escreve em stderr.
// A CLI usa stdout para a saída do usuário, então os logs não podem se misturar a ela.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter permite direcionar os logs (útil em testes).
func NewLoggerWithWriter(level string, out io.Writer) Logger {
	minLevel, ok := levels[strings.ToLower(level)]
	if !ok {
		minLevel = levels["info"]
	}
	return &SimpleLogger{out: out, minLevel: minLevel, exit: os.Exit}
}

// NewNopLogger descarta tudo.
func NewNopLogger() Logger {
	return NewLoggerWithWriter("off", io.Discard)
}

// logf formata a entrada como JSON e a escreve na saída configurada.
func (l *SimpleLogger) logf(level, msg string, fields map[string]interface{}, err error) {
	if levels[level] < l.minLevel {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     strings.ToUpper(level),
		Message:   msg,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	jsonBytes, _ := json.Marshal(entry)

	l.mu.Lock()
	l.out.Write(append(jsonBytes, '\n'))
	l.mu.Unlock()

	if level == "fatal" {
		l.exit(1)
	}
}

func (l *SimpleLogger) Debug(msg string, fields map[string]interface{}) {
	l.logf("debug", msg, fields, nil)
}

func (l *SimpleLogger) Info(msg string, fields map[string]interface{}) {
	l.logf("info", msg, fields, nil)
}

func (l *SimpleLogger) Warn(msg string, fields map[string]interface{}) {
	l.logf("warn", msg, fields, nil)
}

func (l *SimpleLogger) Error(msg string, err error) {
	l.logf("error", msg, nil, err)
}

// Fatal registra e encerra o processo. Fatal ignora o nível "off".
func (l *SimpleLogger) Fatal(msg string, err error) {
	if l.minLevel > levels["fatal"] {
		l.exit(1)
		return
	}
	l.logf("fatal", msg, nil, err)
}
