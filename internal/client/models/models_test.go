package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_SessionDropsPasswordAndPhone(t *testing.T) {
	u := User{Name: "Ama Mensah", Email: "ama@x.com", Phone: "024", Role: "farmer", Password: "pw"}

	s := u.Session()
	assert.Equal(t, Session{Name: "Ama Mensah", Email: "ama@x.com", Role: "farmer"}, s)
	assert.Equal(t, "Ama", s.FirstName())

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ama Mensah","email":"ama@x.com","role":"farmer"}`, string(b))
}

func TestSession_FirstNameEmpty(t *testing.T) {
	assert.Equal(t, "", Session{Name: "   "}.FirstName())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
}

func TestProduct_JSONKeys(t *testing.T) {
	p := Product{ID: "1", Owner: "a@x.com", Name: "Maize", Description: "dry", Price: 12.5, Image: ""}

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","owner":"a@x.com","name":"Maize","desc":"dry","price":12.5,"img":""}`, string(b))
}

func TestPrice_UnmarshalAcceptsLegacyStrings(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Price
		wantErr bool
	}{
		{name: "number", in: `12.5`, want: 12.5},
		{name: "numeric string", in: `"12.50"`, want: 12.5},
		{name: "empty string", in: `""`, want: 0},
		{name: "null", in: `null`, want: 0},
		{name: "decimal comma", in: `"12,5"`, want: 12.5},
		{name: "thousands and dot", in: `"1,200.5"`, want: 0},
		{name: "garbage string", in: `"abc"`, want: 0},
		{name: "not a number string", in: `"NaN"`, want: 0},
		{name: "object", in: `{}`, want: 0},
		{name: "bool", in: `true`, want: 0},
		{name: "malformed", in: `"12`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Price
			err := json.Unmarshal([]byte(tt.in), &p)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestPrice_String(t *testing.T) {
	assert.Equal(t, "12.50", Price(12.5).String())
	assert.Equal(t, "0.00", Price(0).String())
}
