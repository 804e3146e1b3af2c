// Package errors provides the coded error type used across the transporter.
//
// Every layer returns *Error values (or wraps foreign errors into them) so
// that the CLI can report a stable code and pick an exit status without
// string matching.
//
// # Basic Usage
//
//	err := errors.NotFound("save file not found").WithMeta("path", path)
//	err := errors.OutOfRangef("level %d does not fit an Int tag", level)
//
// Wrapping keeps the original code:
//
//	if err := repo.Save(ctx, doc, path); err != nil {
//	    return errors.Wrap(err, "failed to write save file")
//	}
//
// Changing the code when the meaning changes:
//
//	if err := json.Unmarshal(data, &c); err != nil {
//	    return errors.WrapWithCode(err, errors.CodeDataLoss, "record is not valid JSON")
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("level", level, math.MinInt32, math.MaxInt32, vb)
//	if err := vb.BuildWithCode(errors.CodeOutOfRange); err != nil {
//	    return err
//	}
//
// # Layer Guidelines
//
// Repositories return NotFound, DataLoss (unreadable content) or Internal
// (I/O) and attach the path in metadata. Components such as the schema and
// the allocator return InvalidArgument, OutOfRange, FailedPrecondition or
// ResourceExhausted. External clients return Unavailable, DeadlineExceeded
// or Aborted. Commands map the final code through Code.ExitCode.
package errors
