package entity

// UserCount is the maximum user slot (§3.1, §9: "User cap of 203 vs 208
// differs across revisions; use 203").
const UserCount = 203

// Reserved user slots are pre-named rather than scanned (§3.1).
const (
	UserUnused      = 200
	UserProgramCode = 201
	UserElkRP       = 202
	UserQuickArm    = 203
)

// reservedUserNames maps a reserved slot to its fixed name, grounded on
// PyElk/User/__init__.py's constructor special-casing of numbers
// 200-203.
var reservedUserNames = map[int]string{
	UserUnused:      "Unused",
	UserProgramCode: "Program Code",
	UserElkRP:       "ELK RP",
	UserQuickArm:    "Quick Arm",
}

// User is a named code-holder (glossary). The panel does not report live
// status per user; the entity exists to carry descriptions and serve as
// the attribution target for Area/Keypad last-user fields.
type User struct {
	Base

	Number int
	Name   string
}

// IsReservedUser reports whether number is one of the fixed-name slots
// (§3.1) that must never be overwritten by a scanned description.
func IsReservedUser(number int) bool {
	_, ok := reservedUserNames[number]
	return ok
}

// NewUser returns a User with default values, pre-naming reserved slots.
func NewUser(number int) *User {
	u := &User{Number: number}
	if name, ok := reservedUserNames[number]; ok {
		u.Name = name
	}
	return u
}
