package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestUniqueViolationDetection(t *testing.T) {
	if !isUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Error("unique_violation not detected")
	}
	if !isUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})) {
		t.Error("wrapped unique_violation not detected")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Error("foreign-key violation misread as a toggle conflict")
	}
	if isUniqueViolation(errors.New("connection reset")) {
		t.Error("plain error misread as a toggle conflict")
	}
}
