package validate_test

import (
	"errors"
	"testing"

	"github.com/ledgerlab/powchain/business/sys/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type newTx struct {
	Sender    *string  `json:"sender" validate:"required"`
	Recipient *string  `json:"recipient" validate:"required"`
	Amount    *float64 `json:"amount" validate:"required"`
}

func ptr[T any](v T) *T {
	return &v
}

func Test_Check(t *testing.T) {
	type table struct {
		name   string
		value  newTx
		fields []string
	}

	tt := []table{
		{
			name:  "complete",
			value: newTx{Sender: ptr("0"), Recipient: ptr("alice"), Amount: ptr(1.0)},
		},
		{
			name:  "zero values present",
			value: newTx{Sender: ptr(""), Recipient: ptr(""), Amount: ptr(0.0)},
		},
		{
			name:   "missing amount",
			value:  newTx{Sender: ptr("0"), Recipient: ptr("alice")},
			fields: []string{"amount"},
		},
		{
			name:   "missing all",
			value:  newTx{},
			fields: []string{"sender", "recipient", "amount"},
		},
	}

	t.Log("Given the need to validate request values.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					err := validate.Check(tst.value)

					if len(tst.fields) == 0 {
						if err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould pass validation: %v", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould pass validation.", success, testID)
						return
					}

					if !validate.IsFieldErrors(err) {
						t.Fatalf("\t%s\tTest %d:\tShould get field errors: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould get field errors.", success, testID)

					fields := validate.GetFieldErrors(err).Fields()
					for _, name := range tst.fields {
						if _, exists := fields[name]; !exists {
							t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, fields)
							t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, name)
							t.Fatalf("\t%s\tTest %d:\tShould report the missing field.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould report the missing fields.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_FieldErrorsWrapped(t *testing.T) {
	err := validate.NewFieldsError("nodes", errors.New("must not be empty"))
	wrapped := errors.Join(errors.New("register"), err)

	if !validate.IsFieldErrors(wrapped) {
		t.Fatalf("\t%s\tShould find field errors through wrapping.", failed)
	}
	t.Logf("\t%s\tShould find field errors through wrapping.", success)

	if validate.GetFieldErrors(wrapped).Fields()["nodes"] != "must not be empty" {
		t.Fatalf("\t%s\tShould keep the field message.", failed)
	}
	t.Logf("\t%s\tShould keep the field message.", success)
}
