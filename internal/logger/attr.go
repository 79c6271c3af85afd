package logger

import "log/slog"

// Error records err under the key "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RunID records the run identifier under the key "run_id".
func RunID(id string) slog.Attr {
	return slog.String("run_id", id)
}

// Source records a name source under the key "source".
func Source(name string) slog.Attr {
	return slog.String("source", name)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Name records a full name under the key "name".
func Name(name string) slog.Attr {
	return slog.String("name", name)
}
