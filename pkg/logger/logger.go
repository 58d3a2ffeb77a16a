// Package logger arma el logger estructurado del servicio sobre zerolog.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New construye el logger raíz según el entorno configurado. En development
// escribe consola legible; en cualquier otro entorno emite JSON por stdout.
// Todas las líneas llevan el nombre del servicio. También reemplaza el logger
// global de zerolog, así las librerías que lo usan salen por el mismo canal.
func New(env, service, level string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zl := zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("servicio", service).
		Logger()

	log.Logger = zl
	return zl
}

// parseLevel acepta debug, info, warn y error; cualquier otro valor cae en info.
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
