package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is provided, nil is returned. If only a single non-nil
// error is provided, it is returned unchanged.
func Append(errs ...error) error {
	var me multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			me = append(me, m...)
		} else {
			me = append(me, e)
		}
	}
	switch len(me) {
	case 0:
		return nil
	case 1:
		return me[0]
	default:
		return me
	}
}

// multiErr represents a list of errors. It is flattened when appended to,
// so that a multi error never contains another multi error.
type multiErr []error

func (me multiErr) Error() string {
	if len(me) == 1 {
		return me[0].Error()
	}

	points := make([]string, len(me))
	for i, err := range me {
		points[i] = fmt.Sprintf("* %s", err)
	}

	return fmt.Sprintf(
		"%d errors occurred:\n\t%s",
		len(me), strings.Join(points, "\n\t"))
}

// Unpack implements unpacker interface.
func (me multiErr) Unpack() []error {
	return me
}

// unpacker is implemented by an error that is a container of other errors.
type unpacker interface {
	Unpack() []error
}

var _ unpacker = multiErr(nil)
