// Package errors provides the structured error type shared by every layer of
// waifu-api.
//
// Callers see four categories:
//   - NotFound: a character or owner lookup missed (404-equivalent)
//   - InvalidArgument: malformed input such as a click count out of bounds or an
//     unknown stat key (400-equivalent, never partially applied)
//   - FailedPrecondition, built with InvalidState: a business rule rejected the
//     operation, e.g. insufficient affection or magic (400-equivalent)
//   - Internal: storage or transaction failure (500-equivalent)
//
// Creating errors:
//
//	err := errors.NotFoundf("character %s not found", id)
//	err := errors.InvalidState("insufficient affection")
//
// Wrapping keeps the code of an existing Error and turns anything else into
// Internal:
//
//	if err := tx.Save(ctx, char); err != nil {
//	    return errors.Wrap(err, "failed to save character")
//	}
//
// Validation:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("click_count", input.ClickCount, 1, max, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// GetMessage only exposes messages of errors created by this package, so
// driver errors never leak to callers.
package errors
