package users_test

import (
	"encoding/json"
	"testing"

	"github.com/jrsteele09/bursary-portal/users"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    users.Role
		wantErr bool
	}{
		{"", users.RoleApplicant, false},
		{"applicant", users.RoleApplicant, false},
		{"ADMIN", users.RoleAdmin, false},
		{" admin ", users.RoleAdmin, false},
		{"superuser", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := users.ParseRole(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSnapshot_UnmarshalLoginPayload(t *testing.T) {
	payload := `{
		"id": 7,
		"email": "jane@example.com",
		"phone_number": "0700000000",
		"full_name": "Jane Doe",
		"admission_number": "ADM-1",
		"institution_name": "Balambala High",
		"county": "Garissa"
	}`

	var snap users.Snapshot
	require.NoError(t, json.Unmarshal([]byte(payload), &snap))

	require.Equal(t, "7", snap.ID)
	require.Equal(t, "Jane Doe", snap.Name)
	require.Equal(t, users.RoleApplicant, snap.Role)
	require.Equal(t, "ADM-1", snap.AdmissionNumber)
	require.False(t, snap.IsAdmin())
	require.JSONEq(t, `"Garissa"`, string(snap.Extra["county"]))
}

func TestSnapshot_RoundTripKeepsExtraFields(t *testing.T) {
	in := users.Snapshot{
		ID:    "u-1",
		Name:  "Admin",
		Role:  users.RoleAdmin,
		Email: "admin@example.com",
		Extra: map[string]json.RawMessage{"ward": json.RawMessage(`"Central"`)},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out users.Snapshot
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, in, out)
	require.True(t, out.IsAdmin())
}

func TestSnapshot_UnmarshalRejectsMalformed(t *testing.T) {
	for _, payload := range []string{
		`{bad json`,
		`"just a string"`,
		`[1,2,3]`,
		`42`,
		`{"name": 12}`,
		`{"name":"A","role":"root"}`,
	} {
		t.Run(payload, func(t *testing.T) {
			var snap users.Snapshot
			require.Error(t, json.Unmarshal([]byte(payload), &snap))
		})
	}
}

func TestSnapshot_DisplayName(t *testing.T) {
	var nilSnap *users.Snapshot
	require.Equal(t, "Profile", nilSnap.DisplayName())
	require.Equal(t, "Profile", (&users.Snapshot{}).DisplayName())
	require.Equal(t, "A", (&users.Snapshot{Name: "A"}).DisplayName())
}

func TestRegistration_Validate(t *testing.T) {
	valid := users.Registration{
		FullName:        "Jane Doe",
		AdmissionNumber: "ADM-1",
		InstitutionName: "Balambala High",
		Email:           "Jane@Example.com ",
		PhoneNumber:     "0700000000",
		Password:        "Password123",
	}

	t.Run("valid", func(t *testing.T) {
		r := valid
		r.Normalize()
		require.Equal(t, "jane@example.com", r.Email)
		require.NoError(t, r.Validate())
	})

	t.Run("missing field", func(t *testing.T) {
		r := valid
		r.AdmissionNumber = ""
		err := r.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "admission number")
	})

	t.Run("bad email", func(t *testing.T) {
		r := valid
		r.Email = "not-an-email"
		require.Error(t, r.Validate())
	})

	t.Run("weak password", func(t *testing.T) {
		r := valid
		r.Password = "password"
		err := r.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "uppercase")
	})
}
