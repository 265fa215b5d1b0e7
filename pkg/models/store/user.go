package store

import "encoding/json"

// UserRecord is the directory service's wire format for one identity.
// Field names follow the upstream schema and are not translated.
type UserRecord struct {
	Status  string      `json:"status"`
	Project string      `json:"projekt"`
	Details UserDetails `json:"daten"`
}

type UserDetails struct {
	FirstName string       `json:"vorname"`
	LastName  string       `json:"nachname"`
	Gender    string       `json:"geschlecht"`
	Emails    []EmailEntry `json:"emailadressen"`
}

// EmailEntry tolerates both shapes the service emits: an object with an
// "adresse" key and a bare string.
type EmailEntry struct {
	Address string `json:"adresse"`
}

func (e *EmailEntry) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		e.Address = plain
		return nil
	}
	type entry EmailEntry
	var obj entry
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Address = obj.Address
	return nil
}
