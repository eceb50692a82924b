package assert

import (
	"fmt"
	"testing"

	"github.com/artfi/suiops/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  *errors.Error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrMissingSignatures,
			ErrGot:   errors.ErrMissingSignatures,
			WantFail: false,
		},
		"different errors": {
			ErrWant:  errors.ErrMissingSignatures,
			ErrGot:   errors.ErrInvalidSignature,
			WantFail: true,
		},
		"want nil got error": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"wrapped": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestNilAndEqual(t *testing.T) {
	mock := &tmock{TB: t}
	Nil(mock, nil)
	Nil(mock, (*int)(nil))
	Equal(mock, []byte{1}, []byte{1})
	if mock.failcalls != 0 {
		t.Fatalf("unexpected failures: %d", mock.failcalls)
	}

	Nil(mock, 1)
	Equal(mock, 1, 2)
	if mock.failcalls != 2 {
		t.Fatalf("want 2 failures, got %d", mock.failcalls)
	}
}

type tmock struct {
	testing.TB
	failcalls int
}

func (m *tmock) Helper() {}

func (m *tmock) Fatal(args ...interface{}) {
	m.failcalls++
	m.TB.Log(fmt.Sprint(args...))
}

func (m *tmock) Fatalf(format string, args ...interface{}) {
	m.failcalls++
	m.TB.Logf(format, args...)
}
