package telemetry_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dogmatiq/synckit/internal/telemetry"
	"github.com/dogmatiq/synckit/internal/test"
	"golang.org/x/exp/slog"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	newRecorder := func(buf *bytes.Buffer, level slog.Level) *telemetry.Recorder {
		p := &telemetry.Provider{
			Logger: slog.New(
				slog.NewJSONHandler(
					buf,
					&slog.HandlerOptions{Level: level},
				),
			),
			Attrs: []telemetry.Attr{
				telemetry.String("component", "<component>"),
			},
		}

		return p.Recorder("<subsystem>", telemetry.Int("shard", 3))
	}

	decode := func(t *testing.T, buf *bytes.Buffer) map[string]any {
		t.Helper()

		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatal(err)
		}

		delete(rec, "time")
		return rec
	}

	t.Run("func Info()", func(t *testing.T) {
		t.Parallel()

		t.Run("it logs the event with the recorder's attributes", func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			r := newRecorder(buf, slog.LevelInfo)

			r.Info(
				context.Background(),
				"thing.happened",
				"a thing happened",
				telemetry.Bool("ok", true),
			)

			test.Expect(
				t,
				"unexpected log record",
				decode(t, buf),
				map[string]any{
					"level":     "INFO",
					"msg":       "a thing happened",
					"subsystem": "<subsystem>",
					"component": "<component>",
					"shard":     float64(3),
					"event":     "thing.happened",
					"ok":        true,
				},
			)
		})
	})

	t.Run("func Debug()", func(t *testing.T) {
		t.Parallel()

		t.Run("it does not log below the handler's level", func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			r := newRecorder(buf, slog.LevelInfo)

			r.Debug(context.Background(), "thing.happened", "a thing happened")

			test.Expect(t, "unexpected log output", buf.String(), "")
		})
	})

	t.Run("func Error()", func(t *testing.T) {
		t.Parallel()

		t.Run("it logs the error", func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			r := newRecorder(buf, slog.LevelInfo)

			ctx, span := r.StartSpan(context.Background(), "<span>")
			defer span.End()

			r.Error(ctx, "thing.failed", errors.New("<error>"))

			rec := decode(t, buf)

			test.Expect(t, "unexpected level", rec["level"], any("ERROR"))
			test.Expect(t, "unexpected message", rec["msg"], any("<error>"))
			test.Expect(t, "unexpected error", rec["error"], any("<error>"))
			test.Expect(t, "unexpected event", rec["event"], any("thing.failed"))
		})
	})

	t.Run("func Recorder()", func(t *testing.T) {
		t.Parallel()

		t.Run("it can be used with a nil provider", func(t *testing.T) {
			t.Parallel()

			var p *telemetry.Provider
			r := p.Recorder("<subsystem>")

			ctx, span := r.StartSpan(context.Background(), "<span>")
			r.Counter("things", "{thing}", "The number of things.")(ctx, 1)
			r.Info(ctx, "thing.happened", "a thing happened")
			span.OK()
			span.End()
		})

		t.Run("it can be used with the test provider", func(t *testing.T) {
			t.Parallel()

			r := test.NewTelemetryProvider(t).Recorder("<subsystem>")
			r.Info(context.Background(), "thing.happened", "a thing happened")
		})
	})
}
