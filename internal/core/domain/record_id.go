package domain

import (
	"bytes"
	"encoding/json"
)

// RecordID is an identifier issued by the HR backend. Some collections use
// numeric keys and others use string keys, so both are accepted on decode and
// the value is always re-encoded as a JSON string.
type RecordID string

func (id *RecordID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = RecordID(n.String())
	return nil
}

func (id RecordID) String() string { return string(id) }

// Mongo-backed collections of the HR backend answer with "_id" instead of
// "id". The decoders below accept either.

func (i *Identity) UnmarshalJSON(b []byte) error {
	type alias Identity
	var wire struct {
		alias
		MongoID RecordID `json:"_id"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*i = Identity(wire.alias)
	if i.ID == "" {
		i.ID = wire.MongoID
	}
	return nil
}

func (w *Worker) UnmarshalJSON(b []byte) error {
	type alias Worker
	var wire struct {
		alias
		MongoID RecordID `json:"_id"`
		Mail    string   `json:"correo"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*w = Worker(wire.alias)
	if w.ID == "" {
		w.ID = wire.MongoID
	}
	if w.Email == "" {
		w.Email = wire.Mail
	}
	return nil
}

func (a *Applicant) UnmarshalJSON(b []byte) error {
	type alias Applicant
	var wire struct {
		alias
		MongoID RecordID `json:"_id"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*a = Applicant(wire.alias)
	if a.ID == "" {
		a.ID = wire.MongoID
	}
	return nil
}

func (u *UserAccount) UnmarshalJSON(b []byte) error {
	type alias UserAccount
	var wire struct {
		alias
		MongoID RecordID `json:"_id"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*u = UserAccount(wire.alias)
	if u.ID == "" {
		u.ID = wire.MongoID
	}
	return nil
}
