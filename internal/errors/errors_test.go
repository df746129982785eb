package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gamewaifu/waifu-api/internal/errors"
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
		err      *errors.Error
		code     errors.Code
		expected string
	}{
		{
			name:     "not found",
			err:      errors.NotFoundf("character %s not found", "c1"),
			code:     errors.CodeNotFound,
			expected: "NOT_FOUND: character c1 not found",
		},
		{
			name:     "invalid argument",
			err:      errors.InvalidArgument("click_count must be positive"),
			code:     errors.CodeInvalidArgument,
			expected: "INVALID_ARGUMENT: click_count must be positive",
		},
		{
			name:     "invalid state",
			err:      errors.InvalidState("insufficient affection"),
			code:     errors.CodeFailedPrecondition,
			expected: "FAILED_PRECONDITION: insufficient affection",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.expected, tc.err.Error())
			s.Assert().Equal(tc.code, tc.err.Code)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapPlainErrorBecomesInternal() {
	baseErr := fmt.Errorf("pq: deadlock detected")
	wrapped := errors.Wrap(baseErr, "failed to save character")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
	s.Assert().Equal("failed to save character", errors.GetMessage(wrapped))
	s.Assert().Equal("internal error", errors.GetMessage(baseErr))
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.NotFound("character not found").WithMeta("character_id", "c1")
	wrapped := errors.Wrapf(base, "level up %s", "c1")

	s.Assert().True(errors.IsNotFound(wrapped))
	s.Assert().Equal("c1", errors.GetMeta(wrapped)["character_id"])
	s.Assert().True(errors.Is(wrapped, errors.NotFound("other")))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeAborted, "x"))

	wrapped := errors.WrapWithCode(fmt.Errorf("watch failed"), errors.CodeAborted, "battle changed concurrently")
	s.Assert().True(errors.IsAborted(wrapped))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	s.Assert().Equal(http.StatusNotFound, errors.CodeNotFound.HTTPStatus())
	s.Assert().Equal(http.StatusBadRequest, errors.CodeInvalidArgument.HTTPStatus())
	s.Assert().Equal(http.StatusBadRequest, errors.CodeFailedPrecondition.HTTPStatus())
	s.Assert().Equal(http.StatusInternalServerError, errors.CodeInternal.HTTPStatus())
}

func (s *ErrorsTestSuite) TestGRPCStatus() {
	err := errors.InvalidState("insufficient magic")

	st, ok := status.FromError(err)
	s.Require().True(ok)
	s.Assert().Equal(codes.FailedPrecondition, st.Code())
	s.Assert().Equal("insufficient magic", st.Message())
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("boom")))
	s.Assert().True(errors.IsInvalidState(errors.InvalidStatef("max level %d reached", 100)))
}

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestBuilderCollectsFields() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("character_id", " ", vb)
	errors.ValidateRange("click_count", 0, 1, 10000, vb)
	errors.ValidateNonNegative("points.attack", -1, vb)
	errors.ValidateEnum("rarity", "silver", []string{"blue", "purple", "golden"}, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Equal(
		"INVALID_ARGUMENT: validation failed: character_id: is required; click_count: must be between 1 and 10000; "+
			"points.attack: must not be negative; rarity: must be one of: blue, purple, golden",
		err.Error(),
	)
}

func (s *ValidationTestSuite) TestBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("click_count", 5, vb)
	s.Assert().NoError(vb.Build())
}
