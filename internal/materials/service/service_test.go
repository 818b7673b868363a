package service

import (
	"context"
	"testing"

	"printshop_backend/platform/apperr"

	"github.com/google/uuid"
)

func TestConsume_RejectsNonPositiveGrams(t *testing.T) {
	svc := New(nil, nil)

	for _, grams := range []float64{0, -50} {
		_, err := svc.Consume(context.Background(), uuid.New(), grams)
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("expected validation error for grams=%v, got %v", grams, err)
		}
	}
}
