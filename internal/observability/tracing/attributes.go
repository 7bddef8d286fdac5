package tracing

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

var blockedAttributeKeys = []string{
	"authorization",
	"cookie",
	"password",
	"token",
	"secret",
	"email",
	"phone",
}

// ExtractContext pulls an upstream trace from the carrier using the global propagator.
func ExtractContext(ctx context.Context, carrier propagation.TextMapCarrier) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

// SafeAttributes drops attributes whose keys look like credentials or contact details.
func SafeAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if isBlocked(string(attr.Key)) {
			continue
		}
		out = append(out, attr)
	}
	return out
}

// SafeError reduces an error to its message so wrapped driver values never reach a span.
func SafeError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return nil
	}
	if len(msg) > 256 {
		msg = msg[:256]
	}
	return errors.New(msg)
}

// OrderAttributes tags a span with the order kind served by route and the
// canonical week the handler resolved, when there is one.
func OrderAttributes(route, week string) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if kind := orderKind(route); kind != "" {
		attrs = append(attrs, attribute.String("order.kind", kind))
	}
	if week = strings.TrimSpace(week); week != "" {
		attrs = append(attrs, attribute.String("order.week", week))
	}
	return attrs
}

func orderKind(route string) string {
	for _, segment := range strings.Split(route, "/") {
		switch segment {
		case "drop-cable":
			return "drop_cable"
		case "link-build":
			return "link_build"
		}
	}
	return ""
}

func isBlocked(key string) bool {
	key = strings.ToLower(key)
	for _, blocked := range blockedAttributeKeys {
		if strings.Contains(key, blocked) {
			return true
		}
	}
	return false
}
