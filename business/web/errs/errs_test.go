package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ledgerlab/powchain/business/sys/validate"
	"github.com/ledgerlab/powchain/business/web/errs"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_ToResponse(t *testing.T) {
	type table struct {
		name   string
		err    error
		status int
		msg    string
	}

	tt := []table{
		{
			name:   "fields",
			err:    fmt.Errorf("decode: %w", validate.NewFieldsError("amount", errors.New("amount is a required field"))),
			status: http.StatusBadRequest,
			msg:    "data validation error",
		},
		{
			name:   "trusted",
			err:    errs.NewTrusted(errors.New("no peers registered"), http.StatusConflict),
			status: http.StatusConflict,
			msg:    "no peers registered",
		},
		{
			name:   "untrusted",
			err:    errors.New("disk on fire"),
			status: http.StatusInternalServerError,
			msg:    http.StatusText(http.StatusInternalServerError),
		},
	}

	t.Log("Given the need to convert errors into responses.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s error.", testID, tst.name)
			{
				f := func(t *testing.T) {
					resp, status := errs.ToResponse(tst.err)

					if status != tst.status {
						t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, status)
						t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, tst.status)
						t.Fatalf("\t%s\tTest %d:\tShould get the right status.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the right status.", success, testID)

					if resp.Error != tst.msg {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, resp.Error)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.msg)
						t.Fatalf("\t%s\tTest %d:\tShould get the right message.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the right message.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
