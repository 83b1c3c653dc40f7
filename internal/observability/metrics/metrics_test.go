package metrics

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("reason", "parse_error"),
		attribute.String("property_id", "456"),
		attribute.String("scenario", "family_home"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "reason" && attrs[1].Key != "reason" {
		t.Fatalf("expected reason to be retained")
	}
	if attrs[0].Key != "scenario" && attrs[1].Key != "scenario" {
		t.Fatalf("expected scenario to be retained")
	}
}
