package enums

import (
	"fmt"
	"strings"
)

// Gender represents the gender enum stored on users.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

var validGenders = []Gender{
	GenderMale,
	GenderFemale,
	GenderOther,
}

// String implements fmt.Stringer.
func (g Gender) String() string {
	return string(g)
}

// IsValid reports whether the value is a known Gender.
func (g Gender) IsValid() bool {
	for _, candidate := range validGenders {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGender converts raw input into a Gender.
func ParseGender(value string) (Gender, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validGenders {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid gender %q", value)
}

// UserStatus captures the account lifecycle state.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusInactive  UserStatus = "INACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

var validUserStatuses = []UserStatus{
	UserStatusActive,
	UserStatusInactive,
	UserStatusSuspended,
}

// String implements fmt.Stringer.
func (s UserStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known UserStatus.
func (s UserStatus) IsValid() bool {
	for _, candidate := range validUserStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseUserStatus converts raw input into a UserStatus.
func ParseUserStatus(value string) (UserStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validUserStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user status %q", value)
}

// RoleType names the assignable user roles.
type RoleType string

const (
	RoleTypeAdmin   RoleType = "ROLE_ADMIN"
	RoleTypeManager RoleType = "ROLE_MANAGER"
	RoleTypeUser    RoleType = "ROLE_USER"
)

var validRoleTypes = []RoleType{
	RoleTypeAdmin,
	RoleTypeManager,
	RoleTypeUser,
}

// String implements fmt.Stringer.
func (r RoleType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoleType.
func (r RoleType) IsValid() bool {
	for _, candidate := range validRoleTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoleType converts raw input into a RoleType.
func ParseRoleType(value string) (RoleType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validRoleTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
