package users

import "time"

// MaxRegistrationAge is the exclusive upper bound on the age of a
// registering user.
const MaxRegistrationAge = 65

// AgeInYears computes the age in whole years at asOf: the year difference,
// decremented by one when the birthday has not yet occurred in the asOf
// year.
func AgeInYears(dateOfBirth, asOf time.Time) int {
	age := asOf.Year() - dateOfBirth.Year()
	if asOf.Month() < dateOfBirth.Month() ||
		(asOf.Month() == dateOfBirth.Month() && asOf.Day() < dateOfBirth.Day()) {
		age--
	}
	return age
}

// IsEligibleAge reports whether a person born on dateOfBirth may register
// as of the given instant. Eligibility requires an age strictly below
// MaxRegistrationAge; someone turning 65 exactly on asOf is ineligible.
func IsEligibleAge(dateOfBirth, asOf time.Time) bool {
	return AgeInYears(dateOfBirth, asOf) < MaxRegistrationAge
}
