// Package service contains the application services behind the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/and161185/bookstore/internal/errs"
)

// casAttempts bounds read-modify-write retries after a lost version race.
const casAttempts = 3

// withCAS runs fn until it stops failing with ErrVersionConflict or the attempts
// run out. fn must re-read the document it mutates on every call.
func withCAS(ctx context.Context, fn func() error) error {
	var err error
	for range casAttempts {
		if err = fn(); !errors.Is(err, errs.ErrVersionConflict) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return err
}

// field pairs an input name with whether it was supplied.
type field struct {
	name string
	ok   bool
}

// required returns ErrValidation listing every missing field.
func required(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if !f.ok {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing %s", errs.ErrValidation, strings.Join(missing, ", "))
}
