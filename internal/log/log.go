package log

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// UserIDLocal is the fiber Locals key under which guards store the acting user id.
const UserIDLocal = "user_id"

// Init builds the process logger and installs it as zap's global.
// Development logs go to stdout in console form, production logs as JSON.
// Extra sinks (log file, test buffers) always receive JSON.
func Init(env string, sinks ...io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.MessageKey = "action"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)

	var stdoutEnc zapcore.Encoder
	if env == "production" {
		stdoutEnc = zapcore.NewJSONEncoder(encCfg)
	} else {
		devCfg := encCfg
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		stdoutEnc = zapcore.NewConsoleEncoder(devCfg)
	}

	cores := []zapcore.Core{zapcore.NewCore(stdoutEnc, zapcore.AddSync(os.Stdout), level)}
	for _, w := range sinks {
		if w == nil {
			continue
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(zapcore.ErrorLevel))
	zap.ReplaceGlobals(l)
	return l
}

func requestFields(c *fiber.Ctx) []zap.Field {
	if c == nil {
		return nil
	}
	fs := []zap.Field{
		zap.String("ip", c.IP()),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	}
	if st := c.Response().StatusCode(); st != 0 {
		fs = append(fs, zap.Int("status", st))
	}
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		fs = append(fs, zap.String("req_id", rid))
	}
	if uid, ok := c.Locals(UserIDLocal).(int64); ok && uid != 0 {
		fs = append(fs, zap.Int64("user_id", uid))
	}
	return fs
}

func write(level zapcore.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	fs := requestFields(c)
	if kind != "" {
		fs = append(fs, zap.String("kind", kind))
	}
	if err != nil {
		fs = append(fs, zap.String("err", err.Error()))
	}
	if len(fields) > 0 {
		fs = append(fs, zap.Any("fields", fields))
	}
	if ce := zap.L().Check(level, action); ce != nil {
		ce.Write(fs...)
	}
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "", c, action, nil, fields)
}

// Audit records a state change made by an operator.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "audit", c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, "security", c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zapcore.ErrorLevel, "", c, action, err, fields)
}

// RequestLogger logs one line per request once the response status is final.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		lvl := zapcore.InfoLevel
		switch {
		case status >= fiber.StatusInternalServerError:
			lvl = zapcore.ErrorLevel
		case status >= fiber.StatusBadRequest:
			lvl = zapcore.WarnLevel
		}
		write(lvl, "access", c, "http.request", nil, map[string]any{
			"latency_ms": time.Since(start).Milliseconds(),
			"bytes":      len(c.Response().Body()),
		})
		return nil
	}
}
