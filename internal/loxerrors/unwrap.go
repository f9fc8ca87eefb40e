package loxerrors

// local interface to be used with errors.Unwrap().
// errors packake does not define separate interface, relies on reflection instead.
type unwrapInterface interface {
	Unwrap() error
}

// errors.Join result.
type unwrapJoinInterface interface {
	Unwrap() []error
}

// Flatten returns the individual errors of a (possibly nested) errors.Join
// result, in order. A plain error is returned as a single element list.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}

	joined, ok := err.(unwrapJoinInterface)
	if !ok {
		return []error{err}
	}

	var errs []error
	for _, e := range joined.Unwrap() {
		errs = append(errs, Flatten(e)...)
	}
	return errs
}
