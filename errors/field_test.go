package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Declare errors upfront so that DeepEqual can be used for comparison.
	var (
		emptyKeyErr      = Field("PublicKey", ErrEmpty, "a")
		badKeyErr        = Field("PublicKey", ErrInput, "b")
		emptySchemeErr   = Field("SchemeType", ErrEmpty, "scheme is required")
		signerMultiErr   = Field("Signer", Append(badKeyErr, Append(emptySchemeErr, ErrState)), "signer invalid")
		schemeWrapperErr = Field("SchemeType", emptySchemeErr, "outer")
	)

	cases := map[string]struct {
		Err   error
		Field string
		Want  []error
	}{
		"a single error found by the name": {
			Err:   emptyKeyErr,
			Field: "PublicKey",
			Want:  []error{emptyKeyErr},
		},
		"two error found by the name": {
			Err:   Append(emptyKeyErr, badKeyErr),
			Field: "PublicKey",
			Want:  []error{emptyKeyErr, badKeyErr},
		},
		"field can contain a multierror": {
			Err:   signerMultiErr,
			Field: "Signer",
			Want:  []error{signerMultiErr},
		},
		"field can inspect errors tree to find match": {
			Err:   signerMultiErr,
			Field: "SchemeType",
			Want:  []error{emptySchemeErr},
		},
		"nil error returns nothing": {
			Err:   nil,
			Field: "foo",
			Want:  nil,
		},
		"error not found by the field name": {
			Err:   ErrUnauthorized,
			Field: "foo",
			Want:  nil,
		},
		"field is wrapped": {
			Err:   Wrap(Wrap(badKeyErr, "inner"), "outer"),
			Field: "PublicKey",
			Want:  []error{badKeyErr},
		},
		"multi error field is wrapped, no match": {
			Err:   Wrap(Wrap(signerMultiErr, "inner"), "outer"),
			Field: "unknown-name",
			Want:  nil,
		},
		"multiple field wrap with the same field return the most outside only": {
			Err:   schemeWrapperErr,
			Field: "SchemeType",
			Want:  []error{schemeWrapperErr},
		},
		"complex error with multiple results": {
			Err: Wrap(Append(
				Wrap(emptyKeyErr, "a"),
				Wrap(badKeyErr, "b"),
				Wrap(emptySchemeErr, "c"),
			), "outer"),
			Field: "PublicKey",
			Want:  []error{emptyKeyErr, badKeyErr},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.Err, tc.Field)
			if !reflect.DeepEqual(tc.Want, got) {
				t.Logf("want: %#v", tc.Want)
				t.Logf(" got: %#v", got)
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := Append(nil, ErrEmpty); err != ErrEmpty {
		t.Fatalf("single error must be returned unchanged, got %v", err)
	}
	err := Append(Append(ErrEmpty, ErrState), ErrInput)
	me, ok := err.(multiErr)
	if !ok {
		t.Fatalf("want multi error, got %T", err)
	}
	if len(me) != 3 {
		t.Fatalf("multi error must be flattened, got %d elements", len(me))
	}
}
