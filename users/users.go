package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the privilege level carried by a user snapshot.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a persisted role string onto Role. The remote API omits the role
// for applicants, so an empty string is an applicant.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleApplicant:
		return RoleApplicant, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	return string(r)
}

// Snapshot is the cached profile needed for personalisation and role gating.
// Fields the portal does not interpret are kept in Extra and round-trip unchanged.
type Snapshot struct {
	ID              string
	Name            string
	Role            Role
	Email           string
	PhoneNumber     string
	FullName        string
	AdmissionNumber string
	InstitutionName string

	Extra map[string]json.RawMessage
}

// IsAdmin reports whether the snapshot carries the admin role.
func (s *Snapshot) IsAdmin() bool {
	if s == nil {
		return false
	}
	switch s.Role {
	case RoleAdmin:
		return true
	case RoleApplicant:
		return false
	default:
		return false
	}
}

// DisplayName is what the navbar shows for the signed in user.
func (s *Snapshot) DisplayName() string {
	if s == nil || s.Name == "" {
		return "Profile"
	}
	return s.Name
}

// Validate checks the fields the auth layer depends on.
func (s Snapshot) Validate() error {
	if _, err := ParseRole(string(s.Role)); err != nil {
		return err
	}
	return nil
}

var knownFields = map[string]struct{}{
	"id": {}, "name": {}, "role": {}, "email": {}, "phone_number": {},
	"full_name": {}, "admission_number": {}, "institution_name": {},
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+8)
	for k, v := range s.Extra {
		if _, known := knownFields[k]; !known {
			out[k] = v
		}
	}
	out["name"] = s.Name
	out["role"] = s.Role
	setIfNotEmpty(out, "id", s.ID)
	setIfNotEmpty(out, "email", s.Email)
	setIfNotEmpty(out, "phone_number", s.PhoneNumber)
	setIfNotEmpty(out, "full_name", s.FullName)
	setIfNotEmpty(out, "admission_number", s.AdmissionNumber)
	setIfNotEmpty(out, "institution_name", s.InstitutionName)
	return json.Marshal(out)
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return fmt.Errorf("user snapshot must be a JSON object")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode user snapshot: %w", err)
	}

	var snap Snapshot
	var err error
	var role string
	fields := []struct {
		key string
		dst *string
	}{
		{"name", &snap.Name},
		{"role", &role},
		{"email", &snap.Email},
		{"phone_number", &snap.PhoneNumber},
		{"full_name", &snap.FullName},
		{"admission_number", &snap.AdmissionNumber},
		{"institution_name", &snap.InstitutionName},
	}
	for _, f := range fields {
		if *f.dst, err = stringField(raw, f.key); err != nil {
			return err
		}
	}
	if snap.ID, err = idField(raw, "id"); err != nil {
		return err
	}
	if snap.Role, err = ParseRole(role); err != nil {
		return err
	}
	if snap.Name == "" {
		snap.Name = snap.FullName
	}

	for k, v := range raw {
		if _, known := knownFields[k]; known {
			continue
		}
		if snap.Extra == nil {
			snap.Extra = make(map[string]json.RawMessage)
		}
		snap.Extra[k] = v
	}

	*s = snap
	return nil
}

func setIfNotEmpty(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func stringField(raw map[string]json.RawMessage, key string) (string, error) {
	v, ok := raw[key]
	if !ok || string(v) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", fmt.Errorf("user snapshot field %q: %w", key, err)
	}
	return s, nil
}

// idField accepts both the numeric ids issued by the API and string ids.
func idField(raw map[string]json.RawMessage, key string) (string, error) {
	v, ok := raw[key]
	if !ok || string(v) == "null" {
		return "", nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String(), nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", fmt.Errorf("user snapshot field %q: %w", key, err)
	}
	return s, nil
}
