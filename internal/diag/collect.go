package diag

import (
	"cmp"
	"errors"
	"slices"
)

// Flatten unrolls errors joined by [errors.Join] into a flat list. Nil errors
// are dropped.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}

	list := []error{err}
	for i := 0; i < len(list); i++ {
		if u, ok := list[i].(interface{ Unwrap() []error }); ok {
			// errors.Join collapses errors with a single error having Unwrap()
			// []error method. The underlying errors could be retrieved using
			// the Unwrap() method.
			list = append(list, u.Unwrap()...)

			// The underlying errors are appended to the list. So the original
			// error can be removed.
			list[i] = nil
		}
	}
	return slices.DeleteFunc(list, func(err error) bool {
		return err == nil
	})
}

// Collect separates diagnostics from other errors in err. Diagnostics are
// sorted by position and then by message. Other errors are sorted by message.
func Collect(err error) ([]*Diagnostic, []error) {
	var diags []*Diagnostic
	var others []error
	for _, err := range Flatten(err) {
		var d *Diagnostic
		if errors.As(err, &d) {
			diags = append(diags, d)
		} else {
			others = append(others, err)
		}
	}

	slices.SortStableFunc(diags, compare)
	slices.SortStableFunc(others, func(a, b error) int {
		return cmp.Compare(a.Error(), b.Error())
	})
	return diags, others
}

func compare(a, b *Diagnostic) int {
	pa, pb := a.Position(), b.Position()
	if c := cmp.Compare(pa.Filename, pb.Filename); c != 0 {
		return c
	}
	if c := cmp.Compare(pa.Offset, pb.Offset); c != 0 {
		return c
	}
	return cmp.Compare(a.msg, b.msg)
}

// Reorder flattens err and joins the errors again in a deterministic order:
// other errors first, then diagnostics.
func Reorder(err error) error {
	if err == nil {
		return nil
	}

	diags, others := Collect(err)
	list := others
	for _, d := range diags {
		list = append(list, d)
	}
	return errors.Join(list...)
}

// KindOf reports the kind of the first diagnostic found in err.
func KindOf(err error) (Kind, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.Kind, true
	}
	return 0, false
}
