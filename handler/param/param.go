package param

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("json")
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(decimal.Decimal{}, func(s string) reflect.Value {
		v, err := decimal.NewFromString(s)
		if err != nil {
			return reflect.Value{}
		}

		return reflect.ValueOf(v)
	})

	return d
}

// Binding decodes the request into v, query parameters for GET and the
// json body otherwise, then validates v with its valid tags
func Binding(r *http.Request, v interface{}) error {
	if r.Method == http.MethodGet {
		if err := decoder.Decode(v, r.URL.Query()); err != nil {
			return errors.Wrap(err, "decode query")
		}
	} else if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return errors.Wrap(err, "decode body")
		}
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}
