package metadata

import "time"

// AddController derives an add_controller update record from current,
// appending newAddress to the controller set. The codec does not verify
// signatures; it only shapes the resulting record (spec §4.6).
func AddController(current Record, newAddress string, at time.Time) (Record, error) {
	if newAddress == "" {
		return Record{}, ErrMissingField.Wrap("newAddress")
	}
	for _, c := range current.Controllers {
		if c == newAddress {
			return Record{}, ErrDuplicateController.Wrapf("%q is already a controller", newAddress)
		}
	}

	next := current
	next.Controllers = append(append([]string{}, current.Controllers...), newAddress)
	next.Operation = OpAddController
	next.EnrollmentTimestamp = FormatTimestamp(at)
	next.Revoked = false
	next.RevokedAt = ""
	return next, nil
}

// RemoveController derives a remove_controller update record from current,
// removing address from the controller set. At least one controller must
// remain.
func RemoveController(current Record, address string, at time.Time) (Record, error) {
	remaining := make([]string, 0, len(current.Controllers))
	found := false
	for _, c := range current.Controllers {
		if c == address {
			found = true
			continue
		}
		remaining = append(remaining, c)
	}
	if !found {
		return Record{}, ErrMissingField.Wrapf("%q is not a current controller", address)
	}
	if len(remaining) == 0 {
		return Record{}, ErrEmptyControllers
	}

	next := current
	next.Controllers = remaining
	next.Operation = OpRemoveController
	next.EnrollmentTimestamp = FormatTimestamp(at)
	return next, nil
}
