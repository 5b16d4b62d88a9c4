package validate

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"

	"github.com/pawel3ala/wavestone/internal/models"
	"github.com/pawel3ala/wavestone/internal/transport"
)

const specialChars = `!@#$%^&*(),.?":{}|<>`

// Date layouts accepted for dateAdded, broadest first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func Credentials(req transport.CredentialsRequest) []transport.FieldError {
	var errs []transport.FieldError

	if len(req.Username) < 4 {
		errs = append(errs, transport.NewFieldError("username",
			"Username must be at least 4 characters long", req.Username))
	}
	if len(req.Password) < 6 {
		errs = append(errs, transport.NewFieldError("password",
			"Password must be at least 6 characters long", req.Password))
	}
	if !strings.ContainsFunc(req.Password, unicode.IsUpper) {
		errs = append(errs, transport.NewFieldError("password",
			"Password must contain at least one uppercase letter", req.Password))
	}
	if !strings.ContainsAny(req.Password, specialChars) {
		errs = append(errs, transport.NewFieldError("password",
			"Password must contain at least one special character", req.Password))
	}

	return errs
}

func ISO8601(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// Product validates the raw fields of a create (required=true) or update
// (required=false) request and returns the decoded patch alongside any
// field errors.
func Product(req transport.ProductRequest, required bool) (transport.ProductPatch, []transport.FieldError) {
	var (
		patch transport.ProductPatch
		errs  []transport.FieldError
	)

	nameMsg := "Name must be a string"
	priceMsg := "Price must be a number"
	dateMsg := "Date added must be a valid date"
	if required {
		nameMsg = "Name is required and must be a string"
		priceMsg = "Price is required and must be a number"
		dateMsg = "Date added is required and must be a valid date"
	}

	if req.Name != nil || required {
		var name string
		if req.Name == nil || json.Unmarshal(req.Name, &name) != nil {
			errs = append(errs, transport.NewFieldError("name", nameMsg, rawValue(req.Name)))
		} else {
			patch.Name = &name
		}
	}

	if req.Price != nil || required {
		var price float64
		if req.Price == nil || json.Unmarshal(req.Price, &price) != nil {
			errs = append(errs, transport.NewFieldError("price", priceMsg, rawValue(req.Price)))
		} else {
			patch.Price = &price
		}
	}

	if req.DateAdded != nil || required {
		var date string
		if req.DateAdded == nil || json.Unmarshal(req.DateAdded, &date) != nil || !ISO8601(date) {
			errs = append(errs, transport.NewFieldError("dateAdded", dateMsg, rawValue(req.DateAdded)))
		} else {
			patch.DateAdded = &date
		}
	}

	if req.Category != nil || required {
		var category string
		if req.Category == nil || json.Unmarshal(req.Category, &category) != nil || !models.ValidCategory(category) {
			errs = append(errs, transport.NewFieldError("category",
				"Category must be one of Electronics, Clothing, Food", rawValue(req.Category)))
		} else {
			patch.Category = &category
		}
	}

	return patch, errs
}

func rawValue(raw json.RawMessage) any {
	if raw == nil {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
