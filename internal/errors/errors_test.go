package errors_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "save file not found",
			expected: "NOT_FOUND: save file not found",
		},
		{
			name:     "out of range error",
			code:     errors.CodeOutOfRange,
			message:  "level does not fit",
			expected: "OUT_OF_RANGE: level does not fit",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("slot not found").
		WithMeta("box", 2).
		WithMeta("slot", 7)

	s.Assert().Equal(2, err.Meta["box"])
	s.Assert().Equal(7, err.Meta["slot"])

	err2 := errors.Internal("write failed").
		WithMetaMap(map[string]interface{}{
			"path": "/tmp/a.dat",
			"size": 12,
		})

	s.Assert().Equal("/tmp/a.dat", err2.Meta["path"])
	s.Assert().Equal(12, err2.Meta["size"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("disk full")
	wrapped := errors.Wrap(baseErr, "failed to save record")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to save record", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	original := errors.ResourceExhausted("grid is full").WithMeta("boxes", 30)
	wrapped := errors.Wrap(original, "failed to claim address")

	s.Assert().Equal(errors.CodeResourceExhausted, wrapped.Code)
	s.Assert().Equal(30, wrapped.Meta["boxes"])

	wrapped.WithMeta("extra", true)
	s.Assert().NotContains(original.Meta, "extra")
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.NotFound("missing").WithMeta("path", "x.json")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeDataLoss, "record unreadable")

	s.Assert().Equal(errors.CodeDataLoss, wrapped.Code)
	s.Assert().Equal("x.json", wrapped.Meta["path"])
	s.Assert().True(errors.IsDataLoss(wrapped))
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "nothing"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeInternal, "nothing"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("a")
	err2 := errors.NotFound("b")
	err3 := errors.Internal("c")

	s.Assert().True(errors.Is(err1, err2))
	s.Assert().False(errors.Is(err1, err3))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	testCases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", errors.NotFound("x"), errors.IsNotFound},
		{"invalid argument", errors.InvalidArgumentf("bad %s", "x"), errors.IsInvalidArgument},
		{"unavailable", errors.Unavailable("x"), errors.IsUnavailable},
		{"resource exhausted", errors.ResourceExhaustedf("%d", 1), errors.IsResourceExhausted},
		{"failed precondition", errors.FailedPrecondition("x"), errors.IsFailedPrecondition},
		{"aborted", errors.Aborted("x"), errors.IsAborted},
		{"out of range", errors.OutOfRangef("%d", 300), errors.IsOutOfRange},
		{"data loss", errors.DataLossf("%s", "x"), errors.IsDataLoss},
		{"deadline", errors.DeadlineExceededf("after %s", "2m"), errors.IsDeadlineExceeded},
		{"plain context deadline", fmt.Errorf("wrap: %w", context.DeadlineExceeded), errors.IsDeadlineExceeded},
		{"plain context cancel", context.Canceled, errors.IsCanceled},
		{"plain error is internal", fmt.Errorf("boom"), errors.IsInternal},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().True(tc.check(tc.err))
		})
	}
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(errors.NotFound("x")))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(fmt.Errorf("outer: %w", errors.NotFound("x"))))
}

func (s *ErrorsTestSuite) TestExitCode() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 0},
		{errors.CodeInvalidArgument, 2},
		{errors.CodeOutOfRange, 2},
		{errors.CodeResourceExhausted, 3},
		{errors.CodeDataLoss, 3},
		{errors.CodeUnavailable, 4},
		{errors.CodeDeadlineExceeded, 4},
		{errors.CodeCanceled, 130},
		{errors.CodeInternal, 1},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Assert().Equal(tc.expected, tc.code.ExitCode())
		})
	}
}
