package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/Ujjwal3492/Fitness/internal/model"
	"github.com/Ujjwal3492/Fitness/pkg/mediastore"
	"github.com/labstack/echo/v4"
)

// form gives access to the text fields of a multipart or urlencoded body
type form struct {
	values url.Values
}

func parseForm(c echo.Context) (*form, error) {
	values, err := c.FormParams()
	if err != nil {
		return nil, err
	}
	return &form{values: values}, nil
}

// str returns the value of a field, or nil when the field was not sent
func (f *form) str(name string) *string {
	values, ok := f.values[name]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

// nonEmpty returns the trimmed value of a field, or nil when it is missing
// or blank
func (f *form) nonEmpty(name string) *string {
	v := f.str(name)
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}

// list reads a list field sent as repeated values or as one JSON array
// value. Any other single value is one item, commas included. It returns
// nil when the field was not sent.
func (f *form) list(name string) *model.StringList {
	values, ok := f.values[name]
	if !ok {
		values, ok = f.values[name+"[]"]
	}
	if !ok {
		return nil
	}

	if len(values) == 1 {
		raw := strings.TrimSpace(values[0])
		if strings.HasPrefix(raw, "[") {
			var decoded []string
			if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
				values = decoded
			}
		}
	}

	items := model.StringList{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			items = append(items, v)
		}
	}
	return &items
}

// stageUpload copies the file sent in field to the staging directory. It
// returns "" when the request carries no such file.
func stageUpload(c echo.Context, staging *mediastore.Staging, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}
	return staging.Stage(fh)
}
