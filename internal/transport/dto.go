package transport

import "encoding/json"

// FieldError mirrors the wire shape of a single validation failure:
// {"type":"field","value":...,"msg":...,"path":...,"location":"body"}.
type FieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

func NewFieldError(path, msg string, value any) FieldError {
	return FieldError{
		Type:     "field",
		Value:    value,
		Msg:      msg,
		Path:     path,
		Location: "body",
	}
}

type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse covers both outcomes: success is {auth:true, token},
// failure is {auth:false, token:null, message}.
type LoginResponse struct {
	Auth    bool    `json:"auth"`
	Token   *string `json:"token"`
	Message string  `json:"message,omitempty"`
}

// ProductRequest keeps fields raw so validation can tell a missing field
// from a field of the wrong JSON type and report it per-field.
type ProductRequest struct {
	Name      json.RawMessage `json:"name"`
	Price     json.RawMessage `json:"price"`
	DateAdded json.RawMessage `json:"dateAdded"`
	Category  json.RawMessage `json:"category"`
}

// ProductPatch carries the validated fields; nil means the field was absent
// and the stored value is kept.
type ProductPatch struct {
	Name      *string  `json:"name,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	DateAdded *string  `json:"dateAdded,omitempty"`
	Category  *string  `json:"category,omitempty"`
}
