package models

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Sunnycharan27/loopync/internal/testutil"
)

func TestCanonicalPair_OrdersLexicographically(t *testing.T) {
	lo := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	hi := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	a, b := CanonicalPair(lo, hi)
	testutil.AssertEqual(t, lo, a, "already ordered pair keeps first")
	testutil.AssertEqual(t, hi, b, "already ordered pair keeps second")

	a, b = CanonicalPair(hi, lo)
	testutil.AssertEqual(t, lo, a, "reversed pair swaps first")
	testutil.AssertEqual(t, hi, b, "reversed pair swaps second")
}

func TestCanonicalPair_SingleRepresentation(t *testing.T) {
	x := testutil.RandomUUID()
	y := testutil.RandomUUID()

	a1, b1 := CanonicalPair(x, y)
	a2, b2 := CanonicalPair(y, x)

	testutil.AssertEqual(t, a1, a2, "pair order must not matter")
	testutil.AssertEqual(t, b1, b2, "pair order must not matter")
	testutil.AssertTrue(t, a1.String() < b1.String(), "canonical order is a < b")
}
