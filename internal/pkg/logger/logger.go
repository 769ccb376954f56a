package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// ZeroLogger é a implementação concreta da interface Logger sobre o zerolog,
// com saída JSON (uma linha por entrada).
type ZeroLogger struct {
	zl zerolog.Logger
}

// NewLogger cria um Logger que escreve no stdout. Chamado no main.go.
func NewLogger(level string) Logger {
	return New(os.Stdout, level)
}

// New cria um Logger escrevendo em w. Útil em testes para capturar a saída.
func New(w io.Writer, level string) Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zl := zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
	return &ZeroLogger{zl: zl}
}

// parseLevel converte o LOG_LEVEL da configuração. Valores desconhecidos caem em info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Implementações da Interface Logger

func (l *ZeroLogger) Debug(msg string, fields map[string]interface{}) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Info(msg string, fields map[string]interface{}) {
	l.zl.Info().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Warn(msg string, fields map[string]interface{}) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, err error) {
	l.zl.Error().Err(err).Msg(msg)
}

// Fatal registra a entrada e encerra o processo (os.Exit(1)).
func (l *ZeroLogger) Fatal(msg string, err error) {
	l.zl.Fatal().Err(err).Msg(msg)
}
