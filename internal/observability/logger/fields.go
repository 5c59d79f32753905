package logger

import "go.uber.org/zap"

// Campos estándar para que los nombres queden consistentes en todos los logs.

func RequestID(v string) zap.Field { return zap.String("request_id", v) }

func Method(v string) zap.Field { return zap.String("method", v) }

func Path(v string) zap.Field { return zap.String("path", v) }

func Status(v int) zap.Field { return zap.Int("status", v) }

func Bytes(v int) zap.Field { return zap.Int("bytes", v) }

func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }

// UserID identifica al principal autenticado.
func UserID(v int) zap.Field { return zap.Int("user_id", v) }

func Username(v string) zap.Field { return zap.String("username", v) }

func Permission(v string) zap.Field { return zap.String("permission", v) }

func Operation(v string) zap.Field { return zap.String("operation", v) }

// Layer marca la capa (controller | service | store).
func Layer(v string) zap.Field { return zap.String("layer", v) }

// Op marca la función, ej "BookService.Update".
func Op(v string) zap.Field { return zap.String("op", v) }

func Driver(v string) zap.Field { return zap.String("driver", v) }

func Err(err error) zap.Field { return zap.Error(err) }
