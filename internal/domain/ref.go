package domain

import (
	"bytes"
	"encoding/json"
)

// TourRef é um campo que a API devolve ora como ID, ora como documento populado.
type TourRef struct {
	ID   string
	Tour *Tour
}

func (r *TourRef) UnmarshalJSON(data []byte) error {
	id, tour, err := decodeRef[Tour](data, func(t Tour) string { return t.ID })
	if err != nil {
		return err
	}
	r.ID, r.Tour = id, tour
	return nil
}

func (r TourRef) MarshalJSON() ([]byte, error) {
	if r.Tour != nil {
		return json.Marshal(r.Tour)
	}
	return json.Marshal(r.ID)
}

// Title devolve o título quando o passeio veio populado.
func (r TourRef) Title() string {
	if r.Tour != nil {
		return r.Tour.Title
	}
	return ""
}

// PersonRef é o equivalente de TourRef para turistas, guias e autores de reviews.
type PersonRef struct {
	ID     string
	Person *Account
}

func (r *PersonRef) UnmarshalJSON(data []byte) error {
	id, person, err := decodeRef[Account](data, func(a Account) string { return a.ID })
	if err != nil {
		return err
	}
	r.ID, r.Person = id, person
	return nil
}

func (r PersonRef) MarshalJSON() ([]byte, error) {
	if r.Person != nil {
		return json.Marshal(r.Person)
	}
	return json.Marshal(r.ID)
}

// Label devolve nome, email ou fallback, nessa ordem.
func (r PersonRef) Label(fallback string) string {
	if r.Person != nil {
		if r.Person.Name != "" {
			return r.Person.Name
		}
		if r.Person.Email != "" {
			return r.Person.Email
		}
	}
	return fallback
}

func decodeRef[T any](data []byte, idOf func(T) string) (string, *T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil, nil
	}

	if trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return "", nil, err
		}
		return id, nil, nil
	}

	var doc T
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return "", nil, err
	}
	return idOf(doc), &doc, nil
}
