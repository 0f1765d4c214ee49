package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
)

func Error(err error) slog.Attr {
	const errorKey = "error"
	return slog.String(errorKey, err.Error())
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func UserID(userID string) slog.Attr {
	const userIDKey = "user_id"
	return slog.String(userIDKey, userID)
}

func Day(day string) slog.Attr {
	const dayKey = "day"
	return slog.String(dayKey, day)
}

func Score(score int) slog.Attr {
	const scoreKey = "score"
	return slog.Int(scoreKey, score)
}

func Phase(phase string) slog.Attr {
	const phaseKey = "phase"
	return slog.String(phaseKey, phase)
}

func Source(source string) slog.Attr {
	const sourceKey = "source"
	return slog.String(sourceKey, source)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}
